package auth

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// NewJWS signs for claims and returns a JWS (JSON Web Signature) token string
func NewJWS[C jwt.Claims](k Key, claims C) (string, error) {
	tok := jwt.NewWithClaims(jwt.GetSigningMethod(k.Alg()), claims)
	return tok.SignedString(k.ToSign())
}

// VerifyJWS verifies a JWS token and returns the claims.
//
// # Args
//
// - k: Key to verify the token
//
// - token: JWT token string
//
// - options: passed to the parser, to validate issuer, audience and so on.
//
// # Returns
//
// - C: Claims. The type C should be a pointer to a struct that implements [jwt.Claims].
//
// - error: wraps [ErrInvalidToken] when the token is malformed, not signed with k,
// expired or otherwise not valid.
func VerifyJWS[C jwt.Claims](k Key, token string, options ...jwt.ParserOption) (C, error) {
	_c := *new(C)
	{
		rc := reflect.TypeOf(_c)
		if rc == nil || rc.Kind() != reflect.Ptr {
			return *new(C), errors.New("claims type must be a pointer")
		}
		_c = reflect.New(rc.Elem()).Interface().(C)
	}

	options = append([]jwt.ParserOption{jwt.WithValidMethods([]string{k.Alg()})}, options...)
	tok, err := jwt.ParseWithClaims(
		token, _c,
		func(*jwt.Token) (interface{}, error) { return k.ToVerify(), nil },
		options...,
	)
	if err != nil {
		return *new(C), errors.Join(ErrInvalidToken, err)
	}
	if c, ok := tok.Claims.(C); ok {
		return c, nil
	}
	return *new(C), fmt.Errorf("%w: unexpected claims type: %T", ErrInvalidToken, tok.Claims)
}

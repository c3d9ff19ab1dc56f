// auth issues and verifies tokens of users.
//
// There are two kinds of tokens:
//
// - access token: short-lived JWT proving who the user is.
//
// - refresh token: long-lived JWT used only to get a new access token.
//
// The latest token of each kind is remembered in cache per user.
// A token which is not the latest one is rejected even if it is not expired,
// so logout or a newer login revokes older tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bearnovel/bearnovel/pkg/cache"
	"github.com/bearnovel/bearnovel/pkg/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims of access tokens.
type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Type  string `json:"typ"`
}

// UserId is the id of the user the token is issued for.
func (c *Claims) UserId() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}
	return id, nil
}

type RefreshClaims struct {
	jwt.RegisteredClaims
	Type string `json:"typ"`
}

func AccessTokenKey(userId int) string {
	return "user_token:" + strconv.Itoa(userId)
}

func RefreshTokenKey(userId int) string {
	return "refresh_token:" + strconv.Itoa(userId)
}

type Tokens interface {
	// IssueAccess issues an access token for the user, and make it the latest one.
	IssueAccess(ctx context.Context, user domain.User) (string, error)

	// IssueRefresh issues a refresh token for the user, and make it the latest one.
	IssueRefresh(ctx context.Context, userId int) (string, error)

	// VerifyAccess verifies the access token.
	//
	// It returns error wrapping domain.ErrUnauthenticated
	// when the token is invalid, expired or not the latest one.
	VerifyAccess(ctx context.Context, token string) (*Claims, error)

	// Rotate verifies the refresh token, and replaces it with a new one.
	//
	// Returns
	//
	// - int: user id of the refresh token
	//
	// - string: new refresh token
	//
	// - error: wraps domain.ErrUnauthenticated when the refresh token is not valid.
	Rotate(ctx context.Context, refreshToken string) (int, string, error)

	// Revoke forgets the latest tokens of the user.
	Revoke(ctx context.Context, userId int) error

	AccessTokenExpire() time.Duration
	RefreshTokenExpire() time.Duration
}

type tokens struct {
	key           Key
	store         cache.Store
	issuer        string
	audience      string
	accessExpire  time.Duration
	refreshExpire time.Duration
	now           func() time.Time
}

type Config struct {
	Issuer             string
	Audience           string
	AccessTokenExpire  time.Duration
	RefreshTokenExpire time.Duration
}

type Option func(*tokens) *tokens

// WithClock replaces the clock. It is for testing.
func WithClock(now func() time.Time) Option {
	return func(t *tokens) *tokens {
		t.now = now
		return t
	}
}

func NewTokens(key Key, store cache.Store, conf Config, options ...Option) Tokens {
	t := &tokens{
		key:           key,
		store:         store,
		issuer:        conf.Issuer,
		audience:      conf.Audience,
		accessExpire:  conf.AccessTokenExpire,
		refreshExpire: conf.RefreshTokenExpire,
		now:           time.Now,
	}
	for _, o := range options {
		t = o(t)
	}
	return t
}

func (t *tokens) AccessTokenExpire() time.Duration {
	return t.accessExpire
}

func (t *tokens) RefreshTokenExpire() time.Duration {
	return t.refreshExpire
}

func (t *tokens) registered(userId int, expire time.Duration) jwt.RegisteredClaims {
	now := t.now().Truncate(time.Second)
	return jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userId),
		Issuer:    t.issuer,
		Audience:  jwt.ClaimStrings{t.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
		ID:        uuid.NewString(),
	}
}

func (t *tokens) parserOptions() []jwt.ParserOption {
	return []jwt.ParserOption{
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(0),
		jwt.WithTimeFunc(t.now),
	}
}

func (t *tokens) IssueAccess(ctx context.Context, user domain.User) (string, error) {
	claims := &Claims{
		RegisteredClaims: t.registered(user.Id, t.accessExpire),
		Name:             user.UserName,
		Email:            user.Email,
		Role:             user.Role.String(),
		Type:             TypeAccess,
	}
	token, err := NewJWS(t.key, claims)
	if err != nil {
		return "", err
	}
	if err := t.store.Set(ctx, AccessTokenKey(user.Id), []byte(token), t.accessExpire); err != nil {
		return "", err
	}
	return token, nil
}

func (t *tokens) IssueRefresh(ctx context.Context, userId int) (string, error) {
	claims := &RefreshClaims{
		RegisteredClaims: t.registered(userId, t.refreshExpire),
		Type:             TypeRefresh,
	}
	token, err := NewJWS(t.key, claims)
	if err != nil {
		return "", err
	}
	if err := t.store.Set(ctx, RefreshTokenKey(userId), []byte(claims.ID), t.refreshExpire); err != nil {
		return "", err
	}
	return token, nil
}

func unauthenticated(err error) error {
	return errors.Join(domain.ErrUnauthenticated, err)
}

func (t *tokens) VerifyAccess(ctx context.Context, token string) (*Claims, error) {
	claims, err := VerifyJWS[*Claims](t.key, token, t.parserOptions()...)
	if err != nil {
		return nil, unauthenticated(err)
	}
	if claims.Type != TypeAccess {
		return nil, unauthenticated(fmt.Errorf("%w: not an access token", ErrInvalidToken))
	}
	userId, err := claims.UserId()
	if err != nil {
		return nil, unauthenticated(err)
	}

	latest, found, err := t.store.Get(ctx, AccessTokenKey(userId))
	if err != nil {
		return nil, err
	}
	if !found || string(latest) != token {
		return nil, unauthenticated(fmt.Errorf("%w: revoked", ErrInvalidToken))
	}
	return claims, nil
}

func (t *tokens) Rotate(ctx context.Context, refreshToken string) (int, string, error) {
	claims, err := VerifyJWS[*RefreshClaims](t.key, refreshToken, t.parserOptions()...)
	if err != nil {
		return 0, "", unauthenticated(err)
	}
	if claims.Type != TypeRefresh {
		return 0, "", unauthenticated(fmt.Errorf("%w: not a refresh token", ErrInvalidToken))
	}
	userId, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, "", unauthenticated(fmt.Errorf("%w: subject is not a user id", ErrInvalidToken))
	}

	// consuming the token is atomic: of concurrent rotations, only one wins.
	consumed, err := t.store.CompareAndDelete(ctx, RefreshTokenKey(userId), []byte(claims.ID))
	if err != nil {
		return 0, "", err
	}
	if !consumed {
		return 0, "", unauthenticated(fmt.Errorf("%w: revoked", ErrInvalidToken))
	}

	next, err := t.IssueRefresh(ctx, userId)
	if err != nil {
		return 0, "", err
	}
	return userId, next, nil
}

func (t *tokens) Revoke(ctx context.Context, userId int) error {
	return t.store.Delete(ctx, AccessTokenKey(userId), RefreshTokenKey(userId))
}

package auth

import (
	"bytes"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Key signs and verifies tokens.
type Key interface {
	// Algorithm name of this key, as "alg" in JWS header.
	Alg() string

	// Key to sign messages.
	ToSign() any

	// Key to verify messages.
	ToVerify() any

	Equal(Key) bool
}

type hs256Key struct {
	secret []byte
}

// HS256 returns a Key for HMAC-SHA256 with the shared secret.
func HS256(secret []byte) Key {
	return &hs256Key{secret: append([]byte{}, secret...)}
}

func (*hs256Key) Alg() string {
	return jwt.SigningMethodHS256.Name
}

func (hk *hs256Key) ToSign() any {
	return hk.secret
}

func (hk *hs256Key) ToVerify() any {
	return hk.secret
}

func (hk *hs256Key) Equal(k Key) bool {
	other, ok := k.(*hs256Key)
	if !ok {
		return false
	}
	return bytes.Equal(hk.secret, other.secret)
}

func (hk hs256Key) String() string {
	return fmt.Sprintf("Key{Alg: %s, Secret: (%d bytes)}", hk.Alg(), len(hk.secret))
}

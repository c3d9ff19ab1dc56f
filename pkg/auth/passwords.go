package auth

import (
	"errors"

	"github.com/bearnovel/bearnovel/pkg/domain"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes the password with bcrypt.
//
// The password should be validated with domain.ValidatePassword before.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// ComparePassword checks password against hash.
//
// It returns error wrapping domain.ErrUnauthenticated when they does not match.
func ComparePassword(hash string, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return errors.Join(domain.ErrUnauthenticated, err)
	}
	return err
}

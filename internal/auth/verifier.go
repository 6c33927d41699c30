package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/jkarvo/libris/internal/catalog"
)

// ErrBadPassword indicates a password that does not match the user's
// credential. Callers must not expose whether the user exists.
var ErrBadPassword = errors.New("bad password")

// Verifier checks a login password against a user's credential. The
// concrete scheme is pluggable; the service itself never inspects
// passwords directly.
type Verifier interface {
	Verify(user *catalog.User, password string) error
}

// FixedSecret verifies every user against one shared secret. This is
// a development placeholder, not a credential model.
type FixedSecret struct {
	Secret string
}

func (v FixedSecret) Verify(_ *catalog.User, password string) error {
	if subtle.ConstantTimeCompare([]byte(password), []byte(v.Secret)) != 1 {
		return ErrBadPassword
	}
	return nil
}

// BcryptVerifier verifies passwords against the bcrypt hash stored on
// the user record.
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(user *catalog.User, password string) error {
	if user.PasswordHash == "" {
		return ErrBadPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrBadPassword
	}
	return nil
}

// HashPassword hashes a plaintext password for storage alongside the
// bcrypt verifier.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

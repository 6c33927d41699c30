// Package auth issues and verifies bearer tokens and resolves the
// per-request authentication context.
package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/jkarvo/libris/internal/catalog"
)

// Claims is the token payload: the username and id of the
// authenticated user. Tokens carry no expiry.
type Claims struct {
	Username string `json:"username"`
	ID       string `json:"id"`
	jwt.RegisteredClaims
}

// IssueToken signs a token for the given user with HS256.
func IssueToken(secret string, user *catalog.User) (string, error) {
	c := Claims{
		Username: user.Username,
		ID:       user.ID,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(secret))
}

// ParseToken verifies a signed token and returns its claims.
func ParseToken(secret, raw string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims, ok := t.Claims.(*Claims); ok && t.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jkarvo/libris/internal/catalog"
)

// unexported, collision-proof context key
type userContextKeyType struct{}

var userKey = userContextKeyType{}

// WithUser returns a context carrying the authenticated user. A nil
// user leaves the context anonymous.
func WithUser(ctx context.Context, user *catalog.User) context.Context {
	if user == nil {
		return ctx
	}
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext extracts the authenticated user from the context,
// or nil if the request is anonymous.
func UserFromContext(ctx context.Context) *catalog.User {
	user, _ := ctx.Value(userKey).(*catalog.User)
	return user
}

// Resolver builds the per-request authentication context from a raw
// bearer credential.
type Resolver struct {
	Store  catalog.Store
	Secret string
}

// Resolve verifies the raw credential, looks up the claimed user and
// returns it. Absent, malformed, tampered or unknown-user credentials
// all resolve to nil (anonymous); rejection only happens later, when a
// mutation checks its permission. At most one store lookup is made.
func (r *Resolver) Resolve(ctx context.Context, raw string) (*catalog.User, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	claims, err := ParseToken(r.Secret, raw)
	if err != nil {
		return nil, nil
	}

	user, err := r.Store.FindUserByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

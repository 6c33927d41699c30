package auth

import (
	"context"
	"testing"

	"github.com/jkarvo/libris/internal/catalog"
)

func setupResolver(t *testing.T) (*Resolver, *catalog.User) {
	t.Helper()

	store := catalog.NewMemStore()
	user := &catalog.User{Username: "alice"}
	if err := store.SaveUser(context.Background(), user); err != nil {
		t.Fatalf("SaveUser() error = %v", err)
	}

	return &Resolver{Store: store, Secret: "testsecret"}, user
}

func TestResolveValidToken(t *testing.T) {
	resolver, user := setupResolver(t)
	ctx := context.Background()

	token, err := IssueToken("testsecret", user)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	got, err := resolver.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got == nil {
		t.Fatal("Resolve() = nil, want authenticated user")
	}
	if got.Username != "alice" {
		t.Errorf("Resolve().Username = %q, want %q", got.Username, "alice")
	}
}

func TestResolveAnonymous(t *testing.T) {
	resolver, user := setupResolver(t)
	ctx := context.Background()

	tamperedToken, err := IssueToken("wrongsecret", user)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	orphanToken, err := IssueToken("testsecret", &catalog.User{ID: "gone", Username: "ghost"})
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	tests := []struct {
		name string
		raw  string
	}{
		{"empty credential", ""},
		{"whitespace credential", "   "},
		{"malformed credential", "garbage"},
		{"bad signature", tamperedToken},
		{"valid token for missing user", orphanToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(ctx, tt.raw)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != nil {
				t.Errorf("Resolve() = %v, want anonymous", got)
			}
		})
	}
}

func TestUserContext(t *testing.T) {
	ctx := context.Background()

	if got := UserFromContext(ctx); got != nil {
		t.Errorf("UserFromContext() = %v on a fresh context, want nil", got)
	}

	user := &catalog.User{ID: "u-1", Username: "alice"}
	ctx = WithUser(ctx, user)
	if got := UserFromContext(ctx); got != user {
		t.Errorf("UserFromContext() = %v, want %v", got, user)
	}
}

func TestVerifiers(t *testing.T) {
	t.Run("fixed secret", func(t *testing.T) {
		v := FixedSecret{Secret: "secret"}
		if err := v.Verify(nil, "secret"); err != nil {
			t.Errorf("Verify() error = %v, want nil", err)
		}
		if err := v.Verify(nil, "wrong"); err == nil {
			t.Error("Verify() accepted a wrong password")
		}
	})

	t.Run("bcrypt", func(t *testing.T) {
		hash, err := HashPassword("hunter22")
		if err != nil {
			t.Fatalf("HashPassword() error = %v", err)
		}
		user := &catalog.User{Username: "alice", PasswordHash: hash}

		v := BcryptVerifier{}
		if err := v.Verify(user, "hunter22"); err != nil {
			t.Errorf("Verify() error = %v, want nil", err)
		}
		if err := v.Verify(user, "wrong"); err == nil {
			t.Error("Verify() accepted a wrong password")
		}
		if err := v.Verify(&catalog.User{Username: "nohash"}, "hunter22"); err == nil {
			t.Error("Verify() accepted a user with no stored hash")
		}
	})
}

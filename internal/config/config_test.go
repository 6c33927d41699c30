package config

import "testing"

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("Load() succeeded without JWT_SECRET")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	t.Setenv("LIBRIS_ADDR", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("MONGODB_DATABASE", "")
	t.Setenv("LOGIN_SECRET", "")
	t.Setenv("CREDENTIAL_SCHEME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Addr != ":4000" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":4000")
	}
	if cfg.MongoDatabase != "libris" {
		t.Errorf("MongoDatabase = %q, want %q", cfg.MongoDatabase, "libris")
	}
	if cfg.LoginSecret != "secret" {
		t.Errorf("LoginSecret = %q, want %q", cfg.LoginSecret, "secret")
	}
	if cfg.JWTSecret != "testsecret" {
		t.Errorf("JWTSecret = %q, want %q", cfg.JWTSecret, "testsecret")
	}
	if cfg.CredentialScheme != SchemeFixed {
		t.Errorf("CredentialScheme = %q, want %q", cfg.CredentialScheme, SchemeFixed)
	}
}

func TestLoadCredentialScheme(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	t.Run("bcrypt", func(t *testing.T) {
		t.Setenv("CREDENTIAL_SCHEME", "bcrypt")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.CredentialScheme != SchemeBcrypt {
			t.Errorf("CredentialScheme = %q, want %q", cfg.CredentialScheme, SchemeBcrypt)
		}
	})

	t.Run("unknown scheme rejected", func(t *testing.T) {
		t.Setenv("CREDENTIAL_SCHEME", "plaintext")

		if _, err := Load(); err == nil {
			t.Error("Load() accepted an unknown credential scheme")
		}
	})
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	t.Setenv("LIBRIS_ADDR", ":9999")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("MONGODB_DATABASE", "catalog")
	t.Setenv("LOGIN_SECRET", "hunter2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":9999")
	}
	if cfg.MongoURI != "mongodb://db:27017" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.MongoDatabase != "catalog" {
		t.Errorf("MongoDatabase = %q", cfg.MongoDatabase)
	}
	if cfg.LoginSecret != "hunter2" {
		t.Errorf("LoginSecret = %q", cfg.LoginSecret)
	}
}

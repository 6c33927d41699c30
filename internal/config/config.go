// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the libris server configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// MongoURI is the MongoDB connection string.
	MongoURI string
	// MongoDatabase is the database holding the catalog collections.
	MongoDatabase string
	// JWTSecret signs and verifies bearer tokens.
	JWTSecret string
	// LoginSecret is the shared password accepted by the fixed-secret
	// credential verifier.
	LoginSecret string
	// CredentialScheme selects how login passwords are verified:
	// SchemeFixed or SchemeBcrypt.
	CredentialScheme string
}

// Supported credential schemes.
const (
	SchemeFixed  = "fixed"
	SchemeBcrypt = "bcrypt"
)

// Default returns a Config with default values. JWTSecret has no
// default and must come from the environment.
func Default() *Config {
	return &Config{
		Addr:             ":4000",
		MongoURI:         "mongodb://localhost:27017",
		MongoDatabase:    "libris",
		LoginSecret:      "secret",
		CredentialScheme: SchemeFixed,
	}
}

// Load reads configuration from the environment, consulting .env
// files first without overriding variables provided by the runtime.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	cfg := Default()

	if v := os.Getenv("LIBRIS_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		cfg.MongoURI = v
	}
	if v := os.Getenv("MONGODB_DATABASE"); v != "" {
		cfg.MongoDatabase = v
	}
	if v := os.Getenv("LOGIN_SECRET"); v != "" {
		cfg.LoginSecret = v
	}
	if v := os.Getenv("CREDENTIAL_SCHEME"); v != "" {
		if v != SchemeFixed && v != SchemeBcrypt {
			return nil, fmt.Errorf("unknown CREDENTIAL_SCHEME %q (want %q or %q)", v, SchemeFixed, SchemeBcrypt)
		}
		cfg.CredentialScheme = v
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return cfg, nil
}

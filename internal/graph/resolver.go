// Package graph binds the GraphQL schema to the catalog store: the
// root Resolver dispatches queries and mutations, and the per-type
// resolvers compute relationship fields on demand.
package graph

import (
	"github.com/jkarvo/libris/internal/auth"
	"github.com/jkarvo/libris/internal/catalog"
)

// Resolver is the root resolver. It carries the injected store, the
// credential verifier used by login, and the token signing secret.
type Resolver struct {
	store       catalog.Store
	verifier    auth.Verifier
	tokenSecret string
}

// New creates the root resolver.
func New(store catalog.Store, verifier auth.Verifier, tokenSecret string) *Resolver {
	return &Resolver{
		store:       store,
		verifier:    verifier,
		tokenSecret: tokenSecret,
	}
}

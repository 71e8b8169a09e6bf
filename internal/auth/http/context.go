// Package http provides HTTP middleware and utilities for identity verification.
package http

import (
	"context"

	authDomain "github.com/secretaryhq/secretary/internal/auth/domain"
)

// identityKey is a context key type for storing verified identities.
type identityKey struct{}

// WithIdentity stores a verified identity in the context.
// Called by the identity middleware after successful token verification.
func WithIdentity(ctx context.Context, identity *authDomain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity retrieves a verified identity from the context.
// Returns (identity, true) if present, or (nil, false) for anonymous requests.
func GetIdentity(ctx context.Context) (*authDomain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*authDomain.Identity)
	return identity, ok
}

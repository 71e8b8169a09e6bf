// Package service implements identity verification against external providers.
package service

import (
	"context"

	authDomain "github.com/secretaryhq/secretary/internal/auth/domain"
)

// TokenHandler verifies an access token with one specific provider and
// extracts the account email from its token introspection response.
type TokenHandler interface {
	Verify(ctx context.Context, accessToken string) (*authDomain.Identity, error)
}

// IdentityService resolves a provider name and verifies an access token with it.
type IdentityService interface {
	Verify(ctx context.Context, provider, accessToken string) (*authDomain.Identity, error)
}

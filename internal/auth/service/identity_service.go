package service

import (
	"context"

	authDomain "github.com/secretaryhq/secretary/internal/auth/domain"
)

// identityService routes verification to the handler registered for the
// provider. Unknown providers are a named failure, never a silent fallback.
type identityService struct {
	handlers map[authDomain.Provider]TokenHandler
}

// Verify resolves the provider and verifies the access token with it.
func (s *identityService) Verify(
	ctx context.Context,
	provider, accessToken string,
) (*authDomain.Identity, error) {
	parsed, err := authDomain.ParseProvider(provider)
	if err != nil {
		return nil, err
	}

	handler, ok := s.handlers[parsed]
	if !ok {
		return nil, authDomain.ErrProviderNotSupported
	}

	if accessToken == "" {
		return nil, authDomain.ErrTokenInvalid
	}

	return handler.Verify(ctx, accessToken)
}

// NewIdentityService creates an identity service from a provider registry.
func NewIdentityService(handlers map[authDomain.Provider]TokenHandler) IdentityService {
	return &identityService{handlers: handlers}
}

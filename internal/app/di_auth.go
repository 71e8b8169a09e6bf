package app

import (
	"net/http"

	authDomain "github.com/secretaryhq/secretary/internal/auth/domain"
	authService "github.com/secretaryhq/secretary/internal/auth/service"
)

// IdentityService returns the identity verification service.
// Only providers with a configured token-info URL are registered; an empty
// URL disables the provider, which then fails verification as unsupported.
func (c *Container) IdentityService() (authService.IdentityService, error) {
	c.identityServiceInit.Do(func() {
		c.identityService = c.initIdentityService()
	})
	return c.identityService, nil
}

// initIdentityService creates the identity service with configured provider handlers.
func (c *Container) initIdentityService() authService.IdentityService {
	client := &http.Client{
		Timeout: c.config.AuthProviderTimeout,
	}

	handlers := make(map[authDomain.Provider]authService.TokenHandler)

	if c.config.GoogleTokenInfoURL != "" {
		handlers[authDomain.Google] = authService.NewGoogleTokenHandler(client, c.config.GoogleTokenInfoURL)
	}
	if c.config.FacebookTokenInfoURL != "" {
		handlers[authDomain.Facebook] = authService.NewFacebookTokenHandler(client, c.config.FacebookTokenInfoURL)
	}
	if c.config.MicrosoftTokenInfoURL != "" {
		handlers[authDomain.Microsoft] = authService.NewMicrosoftTokenHandler(client, c.config.MicrosoftTokenInfoURL)
	}

	return authService.NewIdentityService(handlers)
}

package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/secretaryhq/secretary/internal/auth/service"
	apperrors "github.com/secretaryhq/secretary/internal/errors"
	"github.com/secretaryhq/secretary/internal/httputil"
)

// providerHeader names the identity provider for the supplied access token.
const providerHeader = "X-Auth-Provider"

// IdentityMiddleware verifies the caller's identity when credentials are supplied.
//
// Requests carry an access token in the Authorization header ("Bearer <token>",
// case-insensitive) plus the provider name in X-Auth-Provider. When both are
// present the token is verified with the provider and the resulting identity
// is stored in the request context. Requests without credentials pass through
// anonymously; a supplied-but-invalid credential is rejected with 401 rather
// than silently downgraded to anonymous.
func IdentityMiddleware(
	identityService authService.IdentityService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		provider := c.GetHeader(providerHeader)

		if !ok && provider == "" {
			c.Next()
			return
		}

		if !ok || provider == "" {
			logger.Debug("identity verification failed: incomplete credentials")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		identity, err := identityService.Verify(c.Request.Context(), provider, token)
		if err != nil {
			logger.Debug("identity verification failed",
				slog.String("provider", provider),
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("identity verified",
			slog.String("provider", string(identity.Provider)),
			slog.String("email", identity.Email))

		c.Next()
	}
}

// RequireIdentityMiddleware rejects anonymous requests with 401.
// MUST be used after IdentityMiddleware.
func RequireIdentityMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetIdentity(c.Request.Context()); !ok {
			logger.Debug("request rejected: no verified identity in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, bool) {
	const bearerPrefix = "bearer "
	if len(header) < len(bearerPrefix) ||
		!strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := header[len(bearerPrefix):]
	if token == "" {
		return "", false
	}
	return token, true
}

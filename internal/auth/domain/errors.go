package domain

import (
	"github.com/secretaryhq/secretary/internal/errors"
)

// Identity verification error definitions.
var (
	// ErrProviderNotSupported indicates an unknown identity provider name.
	ErrProviderNotSupported = errors.Wrap(errors.ErrInvalidInput, "identity provider not supported")

	// ErrTokenInvalid indicates the provider rejected the access token or the
	// token carried no usable email.
	ErrTokenInvalid = errors.Wrap(errors.ErrUnauthorized, "access token is invalid")

	// ErrProviderUnavailable indicates the provider could not be reached in time.
	ErrProviderUnavailable = errors.Wrap(errors.ErrUnavailable, "identity provider unavailable")
)

package domain

import (
	"github.com/secretaryhq/secretary/internal/errors"
)

// Secret-specific error definitions.
var (
	// ErrSecretNotFound indicates the secret does not exist or was already reclaimed.
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "secret not found")

	// ErrInvalidDateRange indicates availableFromUtc is after availableUntilUtc.
	// This is the only business-rule rejection at creation time.
	ErrInvalidDateRange = errors.Wrap(errors.ErrInvalidInput, "availableFromUtc must not be after availableUntilUtc")
)

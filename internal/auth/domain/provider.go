// Package domain defines the core domain models for identity verification.
// Creators authenticate with an access token issued by an external identity
// provider; the service only needs a verified email address out of it.
package domain

import "strings"

// Provider identifies an external identity provider.
type Provider string

// Supported identity providers.
const (
	Google    Provider = "google"
	Facebook  Provider = "facebook"
	Microsoft Provider = "microsoft"
)

// ParseProvider parses a provider name, case-insensitively.
func ParseProvider(value string) (Provider, error) {
	switch Provider(strings.ToLower(value)) {
	case Google:
		return Google, nil
	case Facebook:
		return Facebook, nil
	case Microsoft:
		return Microsoft, nil
	default:
		return "", ErrProviderNotSupported
	}
}

// Identity is a verified creator identity. The email comes from the provider's
// token introspection endpoint and is trusted verbatim, lower-cased.
type Identity struct {
	Email    string
	Provider Provider
}

// Package domain defines the core domain models for shared secrets.
// A secret is an encrypted payload with a visibility window and a budget of
// successful reveals; it self-destructs when either runs out.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Secret represents an encrypted payload with its visibility window and access budget.
type Secret struct {
	// ID is the unique identifier of the secret, generated at creation and never reused.
	ID uuid.UUID
	// Body contains the encrypted payload, base64-encoded. Plaintext is never persisted.
	Body string
	// SharedByEmail identifies the authenticated creator; empty for anonymous creation.
	SharedByEmail string
	// AccessAttemptsLeft counts the remaining successful reveals. The secret is
	// deleted in the same operation that consumes the last attempt.
	AccessAttemptsLeft int
	// SelfRemovalAllowed gates whether a retriever receives the removal key.
	SelfRemovalAllowed bool
	// AvailableFromUTC is the start of the visibility window.
	AvailableFromUTC time.Time
	// AvailableUntilUTC is the end of the visibility window; past it the secret
	// is reclaimed.
	AvailableUntilUTC time.Time
	// CreatedOnUTC is set once at creation.
	CreatedOnUTC time.Time
	// RemovalKey is an unguessable capability permitting deletion without
	// knowing the secret's content. Owned 1:1, destroyed with the secret.
	RemovalKey uuid.UUID
	// DecryptionKey holds the resolved encryption key in the clear. Present only
	// when the creator was authenticated and supplied no password; destroyed
	// with the secret.
	DecryptionKey string
}

// IsExpired reports whether the secret's visibility window has closed.
func (s *Secret) IsExpired(now time.Time) bool {
	return now.After(s.AvailableUntilUTC)
}

// IsEarly reports whether the secret's visibility window has not opened yet.
func (s *Secret) IsEarly(now time.Time) bool {
	return now.Before(s.AvailableFromUTC)
}

// HasDecryptionKey reports whether a cleartext key is stored for the creator.
func (s *Secret) HasDecryptionKey() bool {
	return s.DecryptionKey != ""
}

// CreateSecretInput carries the caller-supplied fields for secret creation.
type CreateSecretInput struct {
	// Body is the plaintext payload to protect.
	Body string
	// AccessPassword is optional; when empty a random key is generated and
	// returned to the creator.
	AccessPassword string
	// SharedByEmail is the verified creator identity; empty for anonymous creation.
	SharedByEmail string
	// AccessAttempts of zero means "use the configured default".
	AccessAttempts int
	// SelfRemovalAllowed controls whether retrievers receive the removal key.
	SelfRemovalAllowed bool
	// AvailableFromUTC / AvailableUntilUTC define the visibility window; the
	// range must be ordered or creation is rejected.
	AvailableFromUTC  time.Time
	AvailableUntilUTC time.Time
}

// CreatedSecret pairs a freshly persisted secret with the plaintext key that
// encrypted it. The key is returned exactly once, to the creator.
type CreatedSecret struct {
	Secret *Secret
	// ResolvedKey is the caller's password or the generated random key.
	ResolvedKey string
}

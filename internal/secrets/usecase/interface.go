// Package usecase implements the secret lifecycle engine: the rules deciding
// whether a stored secret may be revealed, how its access budget and time
// window are enforced, and how expired secrets are reclaimed.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	secretsDomain "github.com/secretaryhq/secretary/internal/secrets/domain"
)

// SecretRepository defines the interface for Secret persistence operations.
// Implementations persist the secret together with its owned removal key and
// optional decryption key, and delete all three as one cascading unit.
type SecretRepository interface {
	Create(ctx context.Context, secret *secretsDomain.Secret) error
	GetByID(ctx context.Context, id uuid.UUID) (*secretsDomain.Secret, error)
	GetByRemovalKey(ctx context.Context, removalKey uuid.UUID) (*secretsDomain.Secret, error)
	// ListBySharer returns secrets created by the given email, newest first.
	ListBySharer(ctx context.Context, email string, take, skip int) ([]*secretsDomain.Secret, error)
	CountBySharer(ctx context.Context, email string) (int, error)
	// ListExpired returns all secrets whose availability window closed before now.
	ListExpired(ctx context.Context, now time.Time) ([]*secretsDomain.Secret, error)
	// DecrementAccessAttempts atomically decrements the access budget and returns
	// the remaining count. It must be a single conditional statement so that two
	// concurrent reveals cannot both consume the last attempt; when the secret is
	// gone or the budget is already exhausted it returns ErrNotFound.
	DecrementAccessAttempts(ctx context.Context, id uuid.UUID) (int, error)
	// Delete removes the secret and its owned records. Deleting an already-gone
	// secret is a no-op.
	Delete(ctx context.Context, id uuid.UUID) error
}

// SecretUseCase defines the interface for the secret lifecycle engine.
type SecretUseCase interface {
	// Create encrypts and persists a new secret, returning it together with the
	// plaintext key that encrypted it.
	Create(ctx context.Context, input *secretsDomain.CreateSecretInput) (*secretsDomain.CreatedSecret, error)
	// GetByID returns the stored secret, or ErrSecretNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*secretsDomain.Secret, error)
	// Reveal runs one complete reveal attempt: fetch, validate, and on success
	// consume one access attempt. Business outcomes are carried in the result.
	Reveal(ctx context.Context, id uuid.UUID, accessPassword string) (*secretsDomain.ValidatedSecret, error)
	// Validate evaluates one reveal attempt against the secret. Business outcomes
	// (not found, early, expired, password required/incorrect) are returned as
	// values, never as errors. An expired secret is deleted as a side effect.
	Validate(ctx context.Context, secret *secretsDomain.Secret, accessPassword string) (*secretsDomain.ValidatedSecret, error)
	// ProcessAccessed consumes one access attempt after a successful validation.
	// Consuming the last attempt deletes the secret in the same logical operation.
	ProcessAccessed(ctx context.Context, secret *secretsDomain.Secret) (*secretsDomain.Secret, error)
	// Remove unconditionally deletes the secret and its owned records.
	Remove(ctx context.Context, secret *secretsDomain.Secret) error
	// RemoveByRemovalKey deletes the secret owning the removal key. A missing
	// removal key yields ErrSecretNotFound; removal is idempotent.
	RemoveByRemovalKey(ctx context.Context, removalKey uuid.UUID) error
	// List returns one page of the sharer's secrets, newest first.
	List(ctx context.Context, email string, page, pageSize int) (*secretsDomain.Page, error)
}

package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/secretaryhq/secretary/internal/database"
	apperrors "github.com/secretaryhq/secretary/internal/errors"
	secretsDomain "github.com/secretaryhq/secretary/internal/secrets/domain"
	secretsService "github.com/secretaryhq/secretary/internal/secrets/service"
)

// secretUseCase implements the SecretUseCase interface.
type secretUseCase struct {
	txManager             database.TxManager
	secretRepo            SecretRepository
	cipher                secretsService.Cipher
	defaultAccessAttempts int
	maxPageSize           int
	now                   func() time.Time
}

// Create encrypts and persists a new secret. When no access password is given
// a random key is generated; for authenticated creators that key is also
// stored so they can share a plain link.
func (s *secretUseCase) Create(
	ctx context.Context,
	input *secretsDomain.CreateSecretInput,
) (*secretsDomain.CreatedSecret, error) {
	if input.AvailableFromUTC.After(input.AvailableUntilUTC) {
		return nil, secretsDomain.ErrInvalidDateRange
	}

	attempts := input.AccessAttempts
	if attempts < 1 {
		attempts = s.defaultAccessAttempts
	}

	resolvedKey := input.AccessPassword
	hasPassword := resolvedKey != ""
	if !hasPassword {
		resolvedKey = uuid.NewString()
	}

	body, err := s.cipher.Encrypt(resolvedKey, input.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encrypt secret body")
	}

	// Secret ids are time-ordered (v7) so the created-on-desc listing scans
	// the primary key in order; capability keys stay fully random (v4).
	secret := &secretsDomain.Secret{
		ID:                 uuid.Must(uuid.NewV7()),
		Body:               body,
		SharedByEmail:      input.SharedByEmail,
		AccessAttemptsLeft: attempts,
		SelfRemovalAllowed: input.SelfRemovalAllowed,
		AvailableFromUTC:   input.AvailableFromUTC,
		AvailableUntilUTC:  input.AvailableUntilUTC,
		CreatedOnUTC:       s.now(),
		RemovalKey:         uuid.New(),
	}
	if input.SharedByEmail != "" && !hasPassword {
		secret.DecryptionKey = resolvedKey
	}

	err = s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return s.secretRepo.Create(txCtx, secret)
	})
	if err != nil {
		return nil, err
	}

	return &secretsDomain.CreatedSecret{Secret: secret, ResolvedKey: resolvedKey}, nil
}

// GetByID returns the stored secret, or ErrSecretNotFound.
func (s *secretUseCase) GetByID(ctx context.Context, id uuid.UUID) (*secretsDomain.Secret, error) {
	secret, err := s.secretRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, secretsDomain.ErrSecretNotFound
		}
		return nil, err
	}
	return secret, nil
}

// Reveal runs one complete reveal attempt. A missing secret flows through
// Validate so every terminal outcome is produced by the same rules.
func (s *secretUseCase) Reveal(
	ctx context.Context,
	id uuid.UUID,
	accessPassword string,
) (*secretsDomain.ValidatedSecret, error) {
	secret, err := s.secretRepo.GetByID(ctx, id)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	validated, err := s.Validate(ctx, secret, accessPassword)
	if err != nil {
		return nil, err
	}
	if validated.Result != secretsDomain.SuccessfullyValidated {
		return validated, nil
	}

	if _, err := s.ProcessAccessed(ctx, secret); err != nil {
		// Another attempt consumed the last slot between fetch and decrement.
		if errors.Is(err, secretsDomain.ErrSecretNotFound) {
			return &secretsDomain.ValidatedSecret{
				Result:  secretsDomain.NotFound,
				Message: "secret not found",
			}, nil
		}
		return nil, err
	}
	validated.Secret.AccessAttemptsLeft = secret.AccessAttemptsLeft

	return validated, nil
}

// Validate evaluates one reveal attempt. The checks run in a fixed order:
// existence, expiry, window start, password presence, password correctness.
// An expired secret is deleted here; no other branch mutates state.
func (s *secretUseCase) Validate(
	ctx context.Context,
	secret *secretsDomain.Secret,
	accessPassword string,
) (*secretsDomain.ValidatedSecret, error) {
	if secret == nil {
		return &secretsDomain.ValidatedSecret{
			Result:  secretsDomain.NotFound,
			Message: "secret not found",
		}, nil
	}

	now := s.now()

	if secret.IsExpired(now) {
		if err := s.Remove(ctx, secret); err != nil {
			return nil, err
		}
		return &secretsDomain.ValidatedSecret{
			Result:  secretsDomain.Expired,
			Message: "secret has expired",
		}, nil
	}

	if secret.IsEarly(now) {
		return &secretsDomain.ValidatedSecret{
			Result:  secretsDomain.EarlyToShow,
			Message: "secret not found",
		}, nil
	}

	// An empty password is always terminal, even when a key is stored server
	// side: the stored key is recovered by its owner through the
	// authenticated listing, never substituted for an unauthenticated caller.
	if accessPassword == "" {
		return &secretsDomain.ValidatedSecret{
			Result:  secretsDomain.PasswordRequired,
			Message: "access password is required",
		}, nil
	}

	plaintext, err := s.cipher.Decrypt(accessPassword, secret.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decrypt secret body")
	}
	if plaintext == "" {
		return &secretsDomain.ValidatedSecret{
			Result:  secretsDomain.PasswordIncorrect,
			Message: "access password is incorrect",
		}, nil
	}

	projection := *secret
	projection.Body = plaintext
	projection.DecryptionKey = ""
	if !secret.SelfRemovalAllowed {
		projection.RemovalKey = uuid.Nil
	}

	return &secretsDomain.ValidatedSecret{
		Result: secretsDomain.SuccessfullyValidated,
		Secret: &projection,
	}, nil
}

// ProcessAccessed consumes one access attempt. The decrement and the possible
// final deletion run in a single transaction, so concurrent reveals can never
// push the budget below zero.
func (s *secretUseCase) ProcessAccessed(
	ctx context.Context,
	secret *secretsDomain.Secret,
) (*secretsDomain.Secret, error) {
	var remaining int
	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		remaining, err = s.secretRepo.DecrementAccessAttempts(txCtx, secret.ID)
		if err != nil {
			return err
		}
		if remaining < 1 {
			return s.secretRepo.Delete(txCtx, secret.ID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, secretsDomain.ErrSecretNotFound
		}
		return nil, err
	}

	secret.AccessAttemptsLeft = remaining
	return secret, nil
}

// Remove unconditionally deletes the secret and its owned records.
func (s *secretUseCase) Remove(ctx context.Context, secret *secretsDomain.Secret) error {
	return s.secretRepo.Delete(ctx, secret.ID)
}

// RemoveByRemovalKey deletes the secret owning the removal key.
func (s *secretUseCase) RemoveByRemovalKey(ctx context.Context, removalKey uuid.UUID) error {
	secret, err := s.secretRepo.GetByRemovalKey(ctx, removalKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return secretsDomain.ErrSecretNotFound
		}
		return err
	}
	return s.secretRepo.Delete(ctx, secret.ID)
}

// List returns one page of the sharer's secrets, newest first. Pages past the
// end are empty, not errors.
func (s *secretUseCase) List(
	ctx context.Context,
	email string,
	page, pageSize int,
) (*secretsDomain.Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}

	count, err := s.secretRepo.CountBySharer(ctx, email)
	if err != nil {
		return nil, err
	}

	totalPages := (count + pageSize - 1) / pageSize
	skip := pageSize * (page - 1)

	items := []*secretsDomain.Secret{}
	if skip < count {
		items, err = s.secretRepo.ListBySharer(ctx, email, pageSize, skip)
		if err != nil {
			return nil, err
		}
	}

	return &secretsDomain.Page{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: count,
		TotalPages: totalPages,
		Items:      items,
	}, nil
}

// NewSecretUseCase creates a new secret use case instance with the provided dependencies.
func NewSecretUseCase(
	txManager database.TxManager,
	secretRepo SecretRepository,
	cipher secretsService.Cipher,
	defaultAccessAttempts int,
	maxPageSize int,
) SecretUseCase {
	return &secretUseCase{
		txManager:             txManager,
		secretRepo:            secretRepo,
		cipher:                cipher,
		defaultAccessAttempts: defaultAccessAttempts,
		maxPageSize:           maxPageSize,
		now:                   func() time.Time { return time.Now().UTC() },
	}
}

package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/secretaryhq/secretary/internal/metrics"
	secretsDomain "github.com/secretaryhq/secretary/internal/secrets/domain"
)

// secretUseCaseWithMetrics decorates SecretUseCase with metrics instrumentation.
type secretUseCaseWithMetrics struct {
	next    SecretUseCase
	metrics metrics.BusinessMetrics
}

// NewSecretUseCaseWithMetrics wraps a SecretUseCase with metrics recording.
func NewSecretUseCaseWithMetrics(useCase SecretUseCase, m metrics.BusinessMetrics) SecretUseCase {
	return &secretUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for secret creation operations.
func (s *secretUseCaseWithMetrics) Create(
	ctx context.Context,
	input *secretsDomain.CreateSecretInput,
) (*secretsDomain.CreatedSecret, error) {
	start := time.Now()
	created, err := s.next.Create(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "secrets", "secret_create", status)
	s.metrics.RecordDuration(ctx, "secrets", "secret_create", time.Since(start), status)

	return created, err
}

// GetByID records metrics for secret retrieval operations.
func (s *secretUseCaseWithMetrics) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*secretsDomain.Secret, error) {
	start := time.Now()
	secret, err := s.next.GetByID(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "secrets", "secret_get", status)
	s.metrics.RecordDuration(ctx, "secrets", "secret_get", time.Since(start), status)

	return secret, err
}

// Reveal records metrics for reveal attempts. The business outcome is recorded
// as the status, so exhaustion and wrong-password rates are visible without
// exposing which secret was involved.
func (s *secretUseCaseWithMetrics) Reveal(
	ctx context.Context,
	id uuid.UUID,
	accessPassword string,
) (*secretsDomain.ValidatedSecret, error) {
	start := time.Now()
	validated, err := s.next.Reveal(ctx, id, accessPassword)

	status := "error"
	if err == nil {
		status = string(validated.Result)
	}

	s.metrics.RecordOperation(ctx, "secrets", "secret_reveal", status)
	s.metrics.RecordDuration(ctx, "secrets", "secret_reveal", time.Since(start), status)

	return validated, err
}

// Validate delegates without instrumentation; Reveal covers the full attempt.
func (s *secretUseCaseWithMetrics) Validate(
	ctx context.Context,
	secret *secretsDomain.Secret,
	accessPassword string,
) (*secretsDomain.ValidatedSecret, error) {
	return s.next.Validate(ctx, secret, accessPassword)
}

// ProcessAccessed delegates without instrumentation; Reveal covers the full attempt.
func (s *secretUseCaseWithMetrics) ProcessAccessed(
	ctx context.Context,
	secret *secretsDomain.Secret,
) (*secretsDomain.Secret, error) {
	return s.next.ProcessAccessed(ctx, secret)
}

// Remove records metrics for secret deletion operations.
func (s *secretUseCaseWithMetrics) Remove(ctx context.Context, secret *secretsDomain.Secret) error {
	start := time.Now()
	err := s.next.Remove(ctx, secret)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "secrets", "secret_remove", status)
	s.metrics.RecordDuration(ctx, "secrets", "secret_remove", time.Since(start), status)

	return err
}

// RemoveByRemovalKey records metrics for removal-key deletion operations.
func (s *secretUseCaseWithMetrics) RemoveByRemovalKey(ctx context.Context, removalKey uuid.UUID) error {
	start := time.Now()
	err := s.next.RemoveByRemovalKey(ctx, removalKey)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "secrets", "secret_remove_by_key", status)
	s.metrics.RecordDuration(ctx, "secrets", "secret_remove_by_key", time.Since(start), status)

	return err
}

// List records metrics for listing operations.
func (s *secretUseCaseWithMetrics) List(
	ctx context.Context,
	email string,
	page, pageSize int,
) (*secretsDomain.Page, error) {
	start := time.Now()
	result, err := s.next.List(ctx, email, page, pageSize)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "secrets", "secret_list", status)
	s.metrics.RecordDuration(ctx, "secrets", "secret_list", time.Since(start), status)

	return result, err
}

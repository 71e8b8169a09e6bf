// Package mocks provides mock implementations for testing secret use cases.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	secretsDomain "github.com/secretaryhq/secretary/internal/secrets/domain"
)

// MockSecretRepository is a mock implementation of SecretRepository for testing.
type MockSecretRepository struct {
	mock.Mock
}

// Create mocks the Create method of SecretRepository.
func (m *MockSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	args := m.Called(ctx, secret)
	return args.Error(0)
}

// GetByID mocks the GetByID method of SecretRepository.
func (m *MockSecretRepository) GetByID(ctx context.Context, id uuid.UUID) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

// GetByRemovalKey mocks the GetByRemovalKey method of SecretRepository.
func (m *MockSecretRepository) GetByRemovalKey(
	ctx context.Context,
	removalKey uuid.UUID,
) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, removalKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

// ListBySharer mocks the ListBySharer method of SecretRepository.
func (m *MockSecretRepository) ListBySharer(
	ctx context.Context,
	email string,
	take, skip int,
) ([]*secretsDomain.Secret, error) {
	args := m.Called(ctx, email, take, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*secretsDomain.Secret), args.Error(1)
}

// CountBySharer mocks the CountBySharer method of SecretRepository.
func (m *MockSecretRepository) CountBySharer(ctx context.Context, email string) (int, error) {
	args := m.Called(ctx, email)
	return args.Int(0), args.Error(1)
}

// ListExpired mocks the ListExpired method of SecretRepository.
func (m *MockSecretRepository) ListExpired(
	ctx context.Context,
	now time.Time,
) ([]*secretsDomain.Secret, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*secretsDomain.Secret), args.Error(1)
}

// DecrementAccessAttempts mocks the DecrementAccessAttempts method of SecretRepository.
func (m *MockSecretRepository) DecrementAccessAttempts(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

// Delete mocks the Delete method of SecretRepository.
func (m *MockSecretRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

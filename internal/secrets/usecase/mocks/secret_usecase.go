package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	secretsDomain "github.com/secretaryhq/secretary/internal/secrets/domain"
)

// MockSecretUseCase is a mock implementation of SecretUseCase for testing.
type MockSecretUseCase struct {
	mock.Mock
}

// Create mocks the Create method of SecretUseCase.
func (m *MockSecretUseCase) Create(
	ctx context.Context,
	input *secretsDomain.CreateSecretInput,
) (*secretsDomain.CreatedSecret, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.CreatedSecret), args.Error(1)
}

// GetByID mocks the GetByID method of SecretUseCase.
func (m *MockSecretUseCase) GetByID(ctx context.Context, id uuid.UUID) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

// Reveal mocks the Reveal method of SecretUseCase.
func (m *MockSecretUseCase) Reveal(
	ctx context.Context,
	id uuid.UUID,
	accessPassword string,
) (*secretsDomain.ValidatedSecret, error) {
	args := m.Called(ctx, id, accessPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.ValidatedSecret), args.Error(1)
}

// Validate mocks the Validate method of SecretUseCase.
func (m *MockSecretUseCase) Validate(
	ctx context.Context,
	secret *secretsDomain.Secret,
	accessPassword string,
) (*secretsDomain.ValidatedSecret, error) {
	args := m.Called(ctx, secret, accessPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.ValidatedSecret), args.Error(1)
}

// ProcessAccessed mocks the ProcessAccessed method of SecretUseCase.
func (m *MockSecretUseCase) ProcessAccessed(
	ctx context.Context,
	secret *secretsDomain.Secret,
) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

// Remove mocks the Remove method of SecretUseCase.
func (m *MockSecretUseCase) Remove(ctx context.Context, secret *secretsDomain.Secret) error {
	args := m.Called(ctx, secret)
	return args.Error(0)
}

// RemoveByRemovalKey mocks the RemoveByRemovalKey method of SecretUseCase.
func (m *MockSecretUseCase) RemoveByRemovalKey(ctx context.Context, removalKey uuid.UUID) error {
	args := m.Called(ctx, removalKey)
	return args.Error(0)
}

// List mocks the List method of SecretUseCase.
func (m *MockSecretUseCase) List(
	ctx context.Context,
	email string,
	page, pageSize int,
) (*secretsDomain.Page, error) {
	args := m.Called(ctx, email, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Page), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	secretsDomain "github.com/secretaryhq/secretary/internal/secrets/domain"
)

// MockSweeper is a mock implementation of Sweeper for testing.
type MockSweeper struct {
	mock.Mock
}

// Start mocks the Start method of Sweeper.
func (m *MockSweeper) Start(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Sweep mocks the Sweep method of Sweeper.
func (m *MockSweeper) Sweep(ctx context.Context) ([]*secretsDomain.Secret, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*secretsDomain.Secret), args.Error(1)
}

// ListExpired mocks the ListExpired method of Sweeper.
func (m *MockSweeper) ListExpired(ctx context.Context) ([]*secretsDomain.Secret, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*secretsDomain.Secret), args.Error(1)
}

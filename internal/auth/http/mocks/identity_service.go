// Package mocks provides mock implementations for testing identity middleware.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/secretaryhq/secretary/internal/auth/domain"
)

// MockIdentityService is a mock implementation of IdentityService for testing.
type MockIdentityService struct {
	mock.Mock
}

// Verify mocks the Verify method of IdentityService.
func (m *MockIdentityService) Verify(
	ctx context.Context,
	provider, accessToken string,
) (*authDomain.Identity, error) {
	args := m.Called(ctx, provider, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Identity), args.Error(1)
}

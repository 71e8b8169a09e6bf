// Package mocks provides mock implementations for testing cipher consumers.
package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockCipher is a mock implementation of Cipher for testing.
type MockCipher struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of Cipher.
func (m *MockCipher) Encrypt(key, plaintext string) (string, error) {
	args := m.Called(key, plaintext)
	return args.String(0), args.Error(1)
}

// Decrypt mocks the Decrypt method of Cipher.
func (m *MockCipher) Decrypt(key, encoded string) (string, error) {
	args := m.Called(key, encoded)
	return args.String(0), args.Error(1)
}

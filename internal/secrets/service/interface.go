// Package service provides the symmetric cipher used to protect secret bodies.
// Bodies are encrypted with an AEAD cipher (AES-256-GCM or ChaCha20-Poly1305)
// keyed by a SHA-256 digest of a caller-supplied passphrase.
package service

import (
	"github.com/secretaryhq/secretary/internal/errors"
)

// Algorithm identifies an AEAD cipher implementation.
type Algorithm string

const (
	// AESGCM selects AES-256-GCM.
	AESGCM Algorithm = "aes-gcm"
	// ChaCha20 selects ChaCha20-Poly1305.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// ErrUnsupportedAlgorithm indicates an unknown cipher algorithm in configuration.
var ErrUnsupportedAlgorithm = errors.New("unsupported cipher algorithm")

// ParseAlgorithm converts a configuration string to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AESGCM:
		return AESGCM, nil
	case ChaCha20:
		return ChaCha20, nil
	default:
		return "", errors.Wrap(ErrUnsupportedAlgorithm, s)
	}
}

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// Cipher encrypts and decrypts secret bodies under arbitrary-length passphrases.
type Cipher interface {
	// Encrypt encrypts plaintext under the passphrase and returns a base64 blob
	// carrying the nonce and ciphertext. Empty key or plaintext is a contract error.
	Encrypt(key, plaintext string) (string, error)

	// Decrypt reverses Encrypt. A wrong passphrase, a tampered blob, or malformed
	// base64 all yield an empty string with a nil error: to the caller, a failed
	// decryption is indistinguishable from "no result". Empty arguments are a
	// contract error.
	Decrypt(key, encoded string) (string, error)
}

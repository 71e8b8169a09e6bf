package service

import (
	"crypto/sha256"
	"encoding/base64"

	"github.com/secretaryhq/secretary/internal/errors"
)

// ErrEmptyArgument indicates an empty key, plaintext, or ciphertext was passed
// to the cipher. This is a programmer/contract error, not a business outcome.
var ErrEmptyArgument = errors.New("cipher arguments must not be empty")

// PassphraseCipher implements Cipher on top of an AEAD algorithm.
//
// The passphrase is hashed with SHA-256 to produce the fixed-length key the
// block cipher requires, so human passwords and generated GUIDs of any length
// work as keys. A fresh random nonce is used per encryption and prepended to
// the ciphertext inside the base64 blob, so decryption needs nothing beyond
// the blob itself and the passphrase.
type PassphraseCipher struct {
	algorithm Algorithm
}

// NewPassphraseCipher creates a passphrase-keyed cipher for the given algorithm.
func NewPassphraseCipher(algorithm Algorithm) (*PassphraseCipher, error) {
	switch algorithm {
	case AESGCM, ChaCha20:
		return &PassphraseCipher{algorithm: algorithm}, nil
	default:
		return nil, errors.Wrap(ErrUnsupportedAlgorithm, string(algorithm))
	}
}

// Encrypt encrypts plaintext under the passphrase and returns base64(nonce || ciphertext).
func (p *PassphraseCipher) Encrypt(key, plaintext string) (string, error) {
	if key == "" || plaintext == "" {
		return "", ErrEmptyArgument
	}

	aead, err := p.newAEAD(key)
	if err != nil {
		return "", err
	}

	ciphertext, nonce, err := aead.Encrypt([]byte(plaintext), nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to encrypt body")
	}

	blob := make([]byte, 0, len(nonce)+len(ciphertext))
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt reverses Encrypt. Malformed base64, a truncated blob, a wrong
// passphrase, and a tampered ciphertext all return ("", nil): the caller sees
// an empty result and cannot tell which of them happened.
func (p *PassphraseCipher) Decrypt(key, encoded string) (string, error) {
	if key == "" || encoded == "" {
		return "", ErrEmptyArgument
	}

	aead, err := p.newAEAD(key)
	if err != nil {
		return "", err
	}

	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil
	}

	nonceSize := nonceSizeFor(p.algorithm)
	if len(blob) <= nonceSize {
		return "", nil
	}

	plaintext, err := aead.Decrypt(blob[nonceSize:], blob[:nonceSize], nil)
	if err != nil {
		return "", nil
	}

	return string(plaintext), nil
}

// newAEAD derives the 32-byte key from the passphrase and builds the AEAD cipher.
func (p *PassphraseCipher) newAEAD(key string) (AEAD, error) {
	derived := sha256.Sum256([]byte(key))

	switch p.algorithm {
	case AESGCM:
		return NewAESGCM(derived[:])
	case ChaCha20:
		return NewChaCha20Poly1305(derived[:])
	default:
		return nil, errors.Wrap(ErrUnsupportedAlgorithm, string(p.algorithm))
	}
}

// nonceSizeFor returns the nonce size of the given algorithm. Both supported
// AEADs use 12-byte nonces.
func nonceSizeFor(Algorithm) int {
	return 12
}

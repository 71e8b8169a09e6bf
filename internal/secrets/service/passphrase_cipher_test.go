package service

import (
	"encoding/base64"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPassphraseCipher(t *testing.T) {
	t.Run("supported algorithms", func(t *testing.T) {
		for _, alg := range []Algorithm{AESGCM, ChaCha20} {
			cipher, err := NewPassphraseCipher(alg)
			require.NoError(t, err)
			assert.NotNil(t, cipher)
		}
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		_, err := NewPassphraseCipher("des")
		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	})
}

func TestPassphraseCipher_RoundTrip(t *testing.T) {
	for _, alg := range []Algorithm{AESGCM, ChaCha20} {
		t.Run(string(alg), func(t *testing.T) {
			cipher, err := NewPassphraseCipher(alg)
			require.NoError(t, err)

			tests := []struct {
				name      string
				key       string
				plaintext string
			}{
				{"short password", "p1", "X"},
				{"guid key", uuid.NewString(), "the launch code is 0000"},
				{"long password", "correct horse battery staple with extra length", "payload"},
				{"unicode body", "key", "秘密 пароль 🔑"},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					encrypted, err := cipher.Encrypt(tt.key, tt.plaintext)
					require.NoError(t, err)
					assert.NotEmpty(t, encrypted)

					// The blob must be valid base64
					_, err = base64.StdEncoding.DecodeString(encrypted)
					require.NoError(t, err)

					decrypted, err := cipher.Decrypt(tt.key, encrypted)
					require.NoError(t, err)
					assert.Equal(t, tt.plaintext, decrypted)
				})
			}
		})
	}
}

func TestPassphraseCipher_NonceIsUnique(t *testing.T) {
	cipher, err := NewPassphraseCipher(AESGCM)
	require.NoError(t, err)

	first, err := cipher.Encrypt("key", "same plaintext")
	require.NoError(t, err)
	second, err := cipher.Encrypt("key", "same plaintext")
	require.NoError(t, err)

	// Random nonces make identical inputs produce distinct blobs
	assert.NotEqual(t, first, second)
}

func TestPassphraseCipher_WrongKey(t *testing.T) {
	cipher, err := NewPassphraseCipher(AESGCM)
	require.NoError(t, err)

	encrypted, err := cipher.Encrypt("right-key", "X")
	require.NoError(t, err)

	decrypted, err := cipher.Decrypt("wrong-key", encrypted)
	assert.NoError(t, err)
	assert.Empty(t, decrypted)
}

func TestPassphraseCipher_MalformedBlob(t *testing.T) {
	cipher, err := NewPassphraseCipher(AESGCM)
	require.NoError(t, err)

	tests := []struct {
		name    string
		encoded string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"too short for nonce", base64.StdEncoding.EncodeToString([]byte("tiny"))},
		{"nonce only", base64.StdEncoding.EncodeToString(make([]byte, 12))},
		{"garbage ciphertext", base64.StdEncoding.EncodeToString(make([]byte, 48))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decrypted, err := cipher.Decrypt("key", tt.encoded)
			assert.NoError(t, err)
			assert.Empty(t, decrypted)
		})
	}
}

func TestPassphraseCipher_TamperedBlob(t *testing.T) {
	cipher, err := NewPassphraseCipher(AESGCM)
	require.NoError(t, err)

	encrypted, err := cipher.Encrypt("key", "sensitive")
	require.NoError(t, err)

	blob, err := base64.StdEncoding.DecodeString(encrypted)
	require.NoError(t, err)
	blob[len(blob)-1] ^= 0xff

	decrypted, err := cipher.Decrypt("key", base64.StdEncoding.EncodeToString(blob))
	assert.NoError(t, err)
	assert.Empty(t, decrypted)
}

func TestPassphraseCipher_EmptyArguments(t *testing.T) {
	cipher, err := NewPassphraseCipher(AESGCM)
	require.NoError(t, err)

	_, err = cipher.Encrypt("", "plaintext")
	assert.ErrorIs(t, err, ErrEmptyArgument)

	_, err = cipher.Encrypt("key", "")
	assert.ErrorIs(t, err, ErrEmptyArgument)

	_, err = cipher.Decrypt("", "blob")
	assert.ErrorIs(t, err, ErrEmptyArgument)

	_, err = cipher.Decrypt("key", "")
	assert.ErrorIs(t, err, ErrEmptyArgument)
}

func TestParseAlgorithm(t *testing.T) {
	alg, err := ParseAlgorithm("aes-gcm")
	require.NoError(t, err)
	assert.Equal(t, AESGCM, alg)

	alg, err = ParseAlgorithm("chacha20-poly1305")
	require.NoError(t, err)
	assert.Equal(t, ChaCha20, alg)

	_, err = ParseAlgorithm("rot13")
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

package dto

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	secretsDomain "github.com/secretaryhq/secretary/internal/secrets/domain"
)

func TestMapValidatedSecretToResponse(t *testing.T) {
	until := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		removalKey := uuid.New()
		validated := &secretsDomain.ValidatedSecret{
			Result: secretsDomain.SuccessfullyValidated,
			Secret: &secretsDomain.Secret{
				Body:               "the payload",
				AccessAttemptsLeft: 2,
				SelfRemovalAllowed: true,
				AvailableUntilUTC:  until,
				RemovalKey:         removalKey,
			},
		}

		response, status := MapValidatedSecretToResponse(validated)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "successfully_validated", response.Status)
		assert.Equal(t, "the payload", response.Secret.Body)
		assert.Equal(t, removalKey.String(), response.Secret.RemovalKey)
	})

	t.Run("Success_NoSelfRemovalHidesRemovalKey", func(t *testing.T) {
		validated := &secretsDomain.ValidatedSecret{
			Result: secretsDomain.SuccessfullyValidated,
			Secret: &secretsDomain.Secret{
				Body:              "the payload",
				AvailableUntilUTC: until,
			},
		}

		response, _ := MapValidatedSecretToResponse(validated)
		assert.Empty(t, response.Secret.RemovalKey)
	})

	t.Run("EarlyRendersLikeNotFound", func(t *testing.T) {
		early := &secretsDomain.ValidatedSecret{
			Result:  secretsDomain.EarlyToShow,
			Message: "secret not found",
		}
		missing := &secretsDomain.ValidatedSecret{
			Result:  secretsDomain.NotFound,
			Message: "secret not found",
		}

		earlyResponse, earlyStatus := MapValidatedSecretToResponse(early)
		missingResponse, missingStatus := MapValidatedSecretToResponse(missing)

		assert.Equal(t, missingStatus, earlyStatus)
		assert.Equal(t, missingResponse, earlyResponse)
	})

	t.Run("Expired", func(t *testing.T) {
		validated := &secretsDomain.ValidatedSecret{
			Result:  secretsDomain.Expired,
			Message: "secret has expired",
		}

		response, status := MapValidatedSecretToResponse(validated)
		assert.Equal(t, http.StatusGone, status)
		assert.Equal(t, "expired", response.Status)
		assert.Nil(t, response.Secret)
	})

	t.Run("PasswordOutcomes", func(t *testing.T) {
		for _, result := range []secretsDomain.ValidationResult{
			secretsDomain.PasswordRequired,
			secretsDomain.PasswordIncorrect,
		} {
			response, status := MapValidatedSecretToResponse(&secretsDomain.ValidatedSecret{
				Result: result,
			})
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, string(result), response.Status)
		}
	})
}

func TestMapCreatedSecretToResponse(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	secret := &secretsDomain.Secret{
		ID:                 uuid.New(),
		Body:               "ciphertext",
		AccessAttemptsLeft: 3,
		AvailableFromUTC:   now,
		AvailableUntilUTC:  now.Add(time.Hour),
		CreatedOnUTC:       now,
		RemovalKey:         uuid.New(),
	}

	response := MapCreatedSecretToResponse(&secretsDomain.CreatedSecret{
		Secret:      secret,
		ResolvedKey: "the-key",
	})

	assert.Equal(t, secret.ID.String(), response.ID)
	assert.Equal(t, "the-key", response.AccessKey)
	assert.Equal(t, secret.RemovalKey.String(), response.RemovalKey)
	assert.Equal(t, 3, response.AccessAttempts)
}

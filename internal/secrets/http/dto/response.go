// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"net/http"
	"time"

	secretsDomain "github.com/secretaryhq/secretary/internal/secrets/domain"
)

// CreateSecretResponse is returned to the creator after sharing a secret.
// AccessKey and RemovalKey are returned exactly once, here.
type CreateSecretResponse struct {
	ID                 string    `json:"id"`
	AccessKey          string    `json:"accessKey"`
	RemovalKey         string    `json:"removalKey"`
	AccessAttempts     int       `json:"accessAttempts"`
	SelfRemovalAllowed bool      `json:"selfRemovalAllowed"`
	AvailableFromUTC   time.Time `json:"availableFromUtc"`
	AvailableUntilUTC  time.Time `json:"availableUntilUtc"`
	CreatedOnUTC       time.Time `json:"createdOnUtc"`
}

// MapCreatedSecretToResponse converts a freshly created secret to an API response.
func MapCreatedSecretToResponse(created *secretsDomain.CreatedSecret) CreateSecretResponse {
	secret := created.Secret
	return CreateSecretResponse{
		ID:                 secret.ID.String(),
		AccessKey:          created.ResolvedKey,
		RemovalKey:         secret.RemovalKey.String(),
		AccessAttempts:     secret.AccessAttemptsLeft,
		SelfRemovalAllowed: secret.SelfRemovalAllowed,
		AvailableFromUTC:   secret.AvailableFromUTC,
		AvailableUntilUTC:  secret.AvailableUntilUTC,
		CreatedOnUTC:       secret.CreatedOnUTC,
	}
}

// RevealedSecret carries the decrypted payload of a successful reveal.
// RemovalKey is present only when the creator allowed self removal.
type RevealedSecret struct {
	Body               string    `json:"body"`
	AccessAttemptsLeft int       `json:"accessAttemptsLeft"`
	RemovalKey         string    `json:"removalKey,omitempty"`
	AvailableUntilUTC  time.Time `json:"availableUntilUtc"`
}

// RevealSecretResponse is the rendered outcome of one reveal attempt.
type RevealSecretResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Secret  *RevealedSecret `json:"secret,omitempty"`
}

// MapValidatedSecretToResponse converts a reveal outcome to an API response
// and its HTTP status code. A secret whose window has not opened renders
// exactly like a missing one, so probing cannot reveal its existence.
func MapValidatedSecretToResponse(validated *secretsDomain.ValidatedSecret) (RevealSecretResponse, int) {
	switch validated.Result {
	case secretsDomain.SuccessfullyValidated:
		secret := validated.Secret
		revealed := &RevealedSecret{
			Body:               secret.Body,
			AccessAttemptsLeft: secret.AccessAttemptsLeft,
			AvailableUntilUTC:  secret.AvailableUntilUTC,
		}
		if secret.SelfRemovalAllowed {
			revealed.RemovalKey = secret.RemovalKey.String()
		}
		return RevealSecretResponse{
			Status: string(secretsDomain.SuccessfullyValidated),
			Secret: revealed,
		}, http.StatusOK

	case secretsDomain.NotFound, secretsDomain.EarlyToShow:
		return RevealSecretResponse{
			Status:  string(secretsDomain.NotFound),
			Message: "secret not found",
		}, http.StatusNotFound

	case secretsDomain.Expired:
		return RevealSecretResponse{
			Status:  string(secretsDomain.Expired),
			Message: validated.Message,
		}, http.StatusGone

	case secretsDomain.PasswordRequired, secretsDomain.PasswordIncorrect:
		return RevealSecretResponse{
			Status:  string(validated.Result),
			Message: validated.Message,
		}, http.StatusUnauthorized

	default:
		return RevealSecretResponse{
			Status:  string(validated.Result),
			Message: validated.Message,
		}, http.StatusInternalServerError
	}
}

// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	secretsDomain "github.com/secretaryhq/secretary/internal/secrets/domain"
)

// CreateSecretRequest contains the parameters for sharing a new secret.
type CreateSecretRequest struct {
	Body               string    `json:"body" binding:"required"`
	AccessPassword     string    `json:"accessPassword"`
	AccessAttempts     int       `json:"accessAttempts"`
	SelfRemovalAllowed bool      `json:"selfRemovalAllowed"`
	AvailableFromUTC   time.Time `json:"availableFromUtc"`
	AvailableUntilUTC  time.Time `json:"availableUntilUtc"`
}

// Validate checks if the create secret request is valid.
func (r *CreateSecretRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Body, validation.Required),
		validation.Field(&r.AccessAttempts, validation.Min(0)),
		validation.Field(&r.AvailableFromUTC, validation.Required),
		validation.Field(&r.AvailableUntilUTC, validation.Required),
	)
}

// ToInput converts the request to a domain input for the given creator.
func (r *CreateSecretRequest) ToInput(sharedByEmail string) *secretsDomain.CreateSecretInput {
	return &secretsDomain.CreateSecretInput{
		Body:               r.Body,
		AccessPassword:     r.AccessPassword,
		SharedByEmail:      sharedByEmail,
		AccessAttempts:     r.AccessAttempts,
		SelfRemovalAllowed: r.SelfRemovalAllowed,
		AvailableFromUTC:   r.AvailableFromUTC.UTC(),
		AvailableUntilUTC:  r.AvailableUntilUTC.UTC(),
	}
}

// RevealSecretRequest contains the parameters for one reveal attempt.
// The password is optional; whether it is needed depends on the secret.
type RevealSecretRequest struct {
	AccessPassword string `json:"accessPassword"`
}

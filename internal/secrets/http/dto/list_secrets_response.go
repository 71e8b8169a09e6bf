// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	secretsDomain "github.com/secretaryhq/secretary/internal/secrets/domain"
)

// SecretSummary represents one of the sharer's secrets in a listing.
// The encrypted body is never included. The stored decryption key, when
// present, is included: the listing is the only place the sharer can
// recover a generated access key after creation.
type SecretSummary struct {
	ID                 string    `json:"id"`
	RemovalKey         string    `json:"removalKey"`
	DecryptionKey      string    `json:"decryptionKey,omitempty"`
	AccessAttemptsLeft int       `json:"accessAttemptsLeft"`
	SelfRemovalAllowed bool      `json:"selfRemovalAllowed"`
	HasAccessPassword  bool      `json:"hasAccessPassword"`
	AvailableFromUTC   time.Time `json:"availableFromUtc"`
	AvailableUntilUTC  time.Time `json:"availableUntilUtc"`
	CreatedOnUTC       time.Time `json:"createdOnUtc"`
}

// ListSecretsResponse represents one page of the sharer's secrets.
type ListSecretsResponse struct {
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalItems int             `json:"totalItems"`
	TotalPages int             `json:"totalPages"`
	Data       []SecretSummary `json:"data"`
}

// MapPageToListResponse converts a domain page to a list response.
func MapPageToListResponse(page *secretsDomain.Page) ListSecretsResponse {
	data := make([]SecretSummary, 0, len(page.Items))
	for _, secret := range page.Items {
		data = append(data, SecretSummary{
			ID:                 secret.ID.String(),
			RemovalKey:         secret.RemovalKey.String(),
			DecryptionKey:      secret.DecryptionKey,
			AccessAttemptsLeft: secret.AccessAttemptsLeft,
			SelfRemovalAllowed: secret.SelfRemovalAllowed,
			HasAccessPassword:  !secret.HasDecryptionKey(),
			AvailableFromUTC:   secret.AvailableFromUTC,
			AvailableUntilUTC:  secret.AvailableUntilUTC,
			CreatedOnUTC:       secret.CreatedOnUTC,
		})
	}

	return ListSecretsResponse{
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
		Data:       data,
	}
}

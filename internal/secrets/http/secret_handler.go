// Package http provides HTTP handlers for sharing and revealing secrets.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/secretaryhq/secretary/internal/auth/http"
	"github.com/secretaryhq/secretary/internal/httputil"
	secretsDomain "github.com/secretaryhq/secretary/internal/secrets/domain"
	"github.com/secretaryhq/secretary/internal/secrets/http/dto"
	secretsUseCase "github.com/secretaryhq/secretary/internal/secrets/usecase"
	customValidation "github.com/secretaryhq/secretary/internal/validation"
)

// SecretHandler handles HTTP requests for the secret lifecycle.
type SecretHandler struct {
	secretUseCase secretsUseCase.SecretUseCase
	maxPageSize   int
	logger        *slog.Logger
}

// NewSecretHandler creates a new secret handler with required dependencies.
func NewSecretHandler(
	secretUseCase secretsUseCase.SecretUseCase,
	maxPageSize int,
	logger *slog.Logger,
) *SecretHandler {
	return &SecretHandler{
		secretUseCase: secretUseCase,
		maxPageSize:   maxPageSize,
		logger:        logger,
	}
}

// CreateHandler shares a new secret.
// POST /v1/secrets - Identity is optional; authenticated creators can list
// their secrets later and may omit the access password.
// Returns 201 Created with the access and removal keys, shown exactly once.
func (h *SecretHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateSecretRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	email := ""
	if identity, ok := authHTTP.GetIdentity(c.Request.Context()); ok {
		email = identity.Email
	}

	created, err := h.secretUseCase.Create(c.Request.Context(), req.ToInput(email))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCreatedSecretToResponse(created))
}

// RevealHandler runs one reveal attempt against a secret.
// POST /v1/secrets/:id/reveal - The body may carry an access password.
// The response status follows the attempt's outcome; a malformed or unknown
// identifier renders the same 404 as a secret whose window has not opened.
func (h *SecretHandler) RevealHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// A malformed identifier cannot name a secret.
		response, status := dto.MapValidatedSecretToResponse(&secretsDomain.ValidatedSecret{
			Result: secretsDomain.NotFound,
		})
		c.JSON(status, response)
		return
	}

	var req dto.RevealSecretRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.HandleValidationErrorGin(c, err, h.logger)
			return
		}
	}

	validated, err := h.secretUseCase.Reveal(c.Request.Context(), id, req.AccessPassword)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response, status := dto.MapValidatedSecretToResponse(validated)
	c.JSON(status, response)
}

// RemoveHandler destroys a secret through its removal key.
// DELETE /v1/secrets/removal/:removalKey - Returns 204 No Content.
// Removal is idempotent: an unknown or already-used key is also a 204.
func (h *SecretHandler) RemoveHandler(c *gin.Context) {
	removalKey, err := uuid.Parse(c.Param("removalKey"))
	if err != nil {
		c.Data(http.StatusNoContent, "application/json", nil)
		return
	}

	err = h.secretUseCase.RemoveByRemovalKey(c.Request.Context(), removalKey)
	if err != nil && !errors.Is(err, secretsDomain.ErrSecretNotFound) {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListHandler lists the authenticated sharer's secrets, newest first.
// GET /v1/secrets?page=1&pageSize=10 - Requires a verified identity.
// Returns 200 OK with one page; pages past the end are empty, not errors.
func (h *SecretHandler) ListHandler(c *gin.Context) {
	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, errors.New("no verified identity in context"), h.logger)
		return
	}

	page, pageSize, err := httputil.ParsePagination(c, h.maxPageSize)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	result, err := h.secretUseCase.List(c.Request.Context(), identity.Email, page, pageSize)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPageToListResponse(result))
}

package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/secretaryhq/secretary/internal/auth/domain"
	authHTTP "github.com/secretaryhq/secretary/internal/auth/http"
	secretsDomain "github.com/secretaryhq/secretary/internal/secrets/domain"
	"github.com/secretaryhq/secretary/internal/secrets/http/dto"
	"github.com/secretaryhq/secretary/internal/secrets/usecase/mocks"
)

// setupTestHandler creates a test handler with mocked dependencies.
func setupTestHandler(t *testing.T) (*SecretHandler, *mocks.MockSecretUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockSecretUseCase := &mocks.MockSecretUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := NewSecretHandler(mockSecretUseCase, 20, logger)

	return handler, mockSecretUseCase
}

// createTestContext builds a gin context around an optional JSON body.
func createTestContext(method, target string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func withIdentity(c *gin.Context, email string) {
	ctx := authHTTP.WithIdentity(c.Request.Context(), &authDomain.Identity{
		Email:    email,
		Provider: authDomain.Google,
	})
	c.Request = c.Request.WithContext(ctx)
}

func testWindow() (time.Time, time.Time) {
	from := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	return from, from.Add(24 * time.Hour)
}

func TestSecretHandler_CreateHandler(t *testing.T) {
	t.Run("Success_Anonymous", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		from, until := testWindow()
		request := dto.CreateSecretRequest{
			Body:              "the payload",
			AvailableFromUTC:  from,
			AvailableUntilUTC: until,
		}

		secret := &secretsDomain.Secret{
			ID:                 uuid.New(),
			AccessAttemptsLeft: 3,
			AvailableFromUTC:   from,
			AvailableUntilUTC:  until,
			CreatedOnUTC:       from,
			RemovalKey:         uuid.New(),
		}
		created := &secretsDomain.CreatedSecret{Secret: secret, ResolvedKey: "generated-key"}

		mockUseCase.On("Create", mock.Anything, mock.MatchedBy(func(input *secretsDomain.CreateSecretInput) bool {
			return input.Body == "the payload" && input.SharedByEmail == ""
		})).Return(created, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/secrets", request)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.CreateSecretResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, secret.ID.String(), response.ID)
		assert.Equal(t, "generated-key", response.AccessKey)
		assert.Equal(t, secret.RemovalKey.String(), response.RemovalKey)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_AuthenticatedCreatorEmailFlowsThrough", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		from, until := testWindow()
		request := dto.CreateSecretRequest{
			Body:              "the payload",
			AvailableFromUTC:  from,
			AvailableUntilUTC: until,
		}

		secret := &secretsDomain.Secret{ID: uuid.New(), RemovalKey: uuid.New()}
		created := &secretsDomain.CreatedSecret{Secret: secret, ResolvedKey: "generated-key"}

		mockUseCase.On("Create", mock.Anything, mock.MatchedBy(func(input *secretsDomain.CreateSecretInput) bool {
			return input.SharedByEmail == "alice@example.com"
		})).Return(created, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/secrets", request)
		withIdentity(c, "alice@example.com")
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_MissingBody", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		from, until := testWindow()
		request := dto.CreateSecretRequest{
			AvailableFromUTC:  from,
			AvailableUntilUTC: until,
		}

		c, w := createTestContext(http.MethodPost, "/v1/secrets", request)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_InvalidDateRange", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		from, until := testWindow()
		request := dto.CreateSecretRequest{
			Body:              "the payload",
			AvailableFromUTC:  until,
			AvailableUntilUTC: from,
		}

		mockUseCase.On("Create", mock.Anything, mock.Anything).
			Return(nil, secretsDomain.ErrInvalidDateRange).Once()

		c, w := createTestContext(http.MethodPost, "/v1/secrets", request)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestSecretHandler_RevealHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		id := uuid.New()
		_, until := testWindow()
		validated := &secretsDomain.ValidatedSecret{
			Result: secretsDomain.SuccessfullyValidated,
			Secret: &secretsDomain.Secret{
				ID:                 id,
				Body:               "the payload",
				AccessAttemptsLeft: 2,
				AvailableUntilUTC:  until,
			},
		}

		mockUseCase.On("Reveal", mock.Anything, id, "hunter2").Return(validated, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/secrets/"+id.String()+"/reveal",
			dto.RevealSecretRequest{AccessPassword: "hunter2"})
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.RevealHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.RevealSecretResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "successfully_validated", response.Status)
		assert.Equal(t, "the payload", response.Secret.Body)
		assert.Equal(t, 2, response.Secret.AccessAttemptsLeft)
		assert.Empty(t, response.Secret.RemovalKey)
	})

	t.Run("Success_NoRequestBody", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		id := uuid.New()
		validated := &secretsDomain.ValidatedSecret{
			Result:  secretsDomain.PasswordRequired,
			Message: "access password is required",
		}

		mockUseCase.On("Reveal", mock.Anything, id, "").Return(validated, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/secrets/"+id.String()+"/reveal", nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.RevealHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("NotFound_MalformedID", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/secrets/not-a-uuid/reveal", nil)
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
		handler.RevealHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockUseCase.AssertNotCalled(t, "Reveal", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotFound_UnknownSecret", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		id := uuid.New()
		validated := &secretsDomain.ValidatedSecret{
			Result:  secretsDomain.NotFound,
			Message: "secret not found",
		}
		mockUseCase.On("Reveal", mock.Anything, id, "").Return(validated, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/secrets/"+id.String()+"/reveal", nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.RevealHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Gone_Expired", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		id := uuid.New()
		validated := &secretsDomain.ValidatedSecret{
			Result:  secretsDomain.Expired,
			Message: "secret has expired",
		}
		mockUseCase.On("Reveal", mock.Anything, id, "").Return(validated, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/secrets/"+id.String()+"/reveal", nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.RevealHandler(c)

		assert.Equal(t, http.StatusGone, w.Code)
	})

	t.Run("Error_UseCaseFailure", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		id := uuid.New()
		mockUseCase.On("Reveal", mock.Anything, id, "").
			Return(nil, assert.AnError).Once()

		c, w := createTestContext(http.MethodPost, "/v1/secrets/"+id.String()+"/reveal", nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.RevealHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestSecretHandler_RemoveHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		removalKey := uuid.New()
		mockUseCase.On("RemoveByRemovalKey", mock.Anything, removalKey).Return(nil).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/secrets/removal/"+removalKey.String(), nil)
		c.Params = gin.Params{{Key: "removalKey", Value: removalKey.String()}}
		handler.RemoveHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_UnknownKeyIsIdempotent", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		removalKey := uuid.New()
		mockUseCase.On("RemoveByRemovalKey", mock.Anything, removalKey).
			Return(secretsDomain.ErrSecretNotFound).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/secrets/removal/"+removalKey.String(), nil)
		c.Params = gin.Params{{Key: "removalKey", Value: removalKey.String()}}
		handler.RemoveHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Success_MalformedKey", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(http.MethodDelete, "/v1/secrets/removal/not-a-uuid", nil)
		c.Params = gin.Params{{Key: "removalKey", Value: "not-a-uuid"}}
		handler.RemoveHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockUseCase.AssertNotCalled(t, "RemoveByRemovalKey", mock.Anything, mock.Anything)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		removalKey := uuid.New()
		mockUseCase.On("RemoveByRemovalKey", mock.Anything, removalKey).
			Return(assert.AnError).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/secrets/removal/"+removalKey.String(), nil)
		c.Params = gin.Params{{Key: "removalKey", Value: removalKey.String()}}
		handler.RemoveHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestSecretHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		from, until := testWindow()
		page := &secretsDomain.Page{
			Page:       1,
			PageSize:   10,
			TotalItems: 1,
			TotalPages: 1,
			Items: []*secretsDomain.Secret{{
				ID:                 uuid.New(),
				AccessAttemptsLeft: 3,
				AvailableFromUTC:   from,
				AvailableUntilUTC:  until,
				CreatedOnUTC:       from,
				RemovalKey:         uuid.New(),
				DecryptionKey:      "stored-key",
			}},
		}

		mockUseCase.On("List", mock.Anything, "alice@example.com", 1, 10).Return(page, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/secrets?page=1&pageSize=10", nil)
		withIdentity(c, "alice@example.com")
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListSecretsResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 1, response.TotalItems)
		assert.Len(t, response.Data, 1)
		assert.False(t, response.Data[0].HasAccessPassword)
		assert.Equal(t, "stored-key", response.Data[0].DecryptionKey)
	})

	t.Run("Error_InvalidPage", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/secrets?page=abc", nil)
		withIdentity(c, "alice@example.com")
		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_NoIdentity", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/secrets", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		mockUseCase.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

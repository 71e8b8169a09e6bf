package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	authDomain "github.com/secretaryhq/secretary/internal/auth/domain"
)

func newTestService(handlers map[authDomain.Provider]TokenHandler) IdentityService {
	return NewIdentityService(handlers)
}

func TestGoogleTokenHandler_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "token-123", r.URL.Query().Get("access_token"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"email": "Alice@Example.com"}`))
		}))
		defer server.Close()

		handler := NewGoogleTokenHandler(server.Client(), server.URL)
		identity, err := handler.Verify(ctx, "token-123")
		assert.NoError(t, err)
		assert.Equal(t, "alice@example.com", identity.Email)
		assert.Equal(t, authDomain.Google, identity.Provider)
	})

	t.Run("Error_TokenRejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		handler := NewGoogleTokenHandler(server.Client(), server.URL)
		_, err := handler.Verify(ctx, "bad-token")
		assert.ErrorIs(t, err, authDomain.ErrTokenInvalid)
	})

	t.Run("Error_NoEmailInResponse", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		handler := NewGoogleTokenHandler(server.Client(), server.URL)
		_, err := handler.Verify(ctx, "token-123")
		assert.ErrorIs(t, err, authDomain.ErrTokenInvalid)
	})

	t.Run("Error_ProviderDown", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		handler := NewGoogleTokenHandler(server.Client(), server.URL)
		_, err := handler.Verify(ctx, "token-123")
		assert.ErrorIs(t, err, authDomain.ErrProviderUnavailable)
	})

	t.Run("Error_Timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		client := &http.Client{Timeout: 10 * time.Millisecond}
		handler := NewGoogleTokenHandler(client, server.URL)
		_, err := handler.Verify(ctx, "token-123")
		assert.ErrorIs(t, err, authDomain.ErrProviderUnavailable)
	})
}

func TestFacebookTokenHandler_Verify(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "email", r.URL.Query().Get("fields"))
		assert.Equal(t, "token-123", r.URL.Query().Get("access_token"))
		_, _ = w.Write([]byte(`{"email": "bob@example.com", "id": "42"}`))
	}))
	defer server.Close()

	handler := NewFacebookTokenHandler(server.Client(), server.URL)
	identity, err := handler.Verify(ctx, "token-123")
	assert.NoError(t, err)
	assert.Equal(t, "bob@example.com", identity.Email)
	assert.Equal(t, authDomain.Facebook, identity.Provider)
}

func TestMicrosoftTokenHandler_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_MailField", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"mail": "carol@example.com"}`))
		}))
		defer server.Close()

		handler := NewMicrosoftTokenHandler(server.Client(), server.URL)
		identity, err := handler.Verify(ctx, "token-123")
		assert.NoError(t, err)
		assert.Equal(t, "carol@example.com", identity.Email)
	})

	t.Run("Success_UserPrincipalNameFallback", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"mail": null, "userPrincipalName": "carol@example.org"}`))
		}))
		defer server.Close()

		handler := NewMicrosoftTokenHandler(server.Client(), server.URL)
		identity, err := handler.Verify(ctx, "token-123")
		assert.NoError(t, err)
		assert.Equal(t, "carol@example.org", identity.Email)
	})
}

func TestIdentityService_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"email": "alice@example.com"}`))
		}))
		defer server.Close()

		svc := newTestService(map[authDomain.Provider]TokenHandler{
			authDomain.Google: NewGoogleTokenHandler(server.Client(), server.URL),
		})

		identity, err := svc.Verify(ctx, "Google", "token-123")
		assert.NoError(t, err)
		assert.Equal(t, "alice@example.com", identity.Email)
	})

	t.Run("Error_UnknownProvider", func(t *testing.T) {
		svc := newTestService(map[authDomain.Provider]TokenHandler{})

		_, err := svc.Verify(ctx, "github", "token-123")
		assert.ErrorIs(t, err, authDomain.ErrProviderNotSupported)
	})

	t.Run("Error_UnregisteredProvider", func(t *testing.T) {
		svc := newTestService(map[authDomain.Provider]TokenHandler{})

		_, err := svc.Verify(ctx, "google", "token-123")
		assert.ErrorIs(t, err, authDomain.ErrProviderNotSupported)
	})

	t.Run("Error_EmptyToken", func(t *testing.T) {
		svc := newTestService(map[authDomain.Provider]TokenHandler{
			authDomain.Google: NewGoogleTokenHandler(http.DefaultClient, "http://localhost:1"),
		})

		_, err := svc.Verify(ctx, "google", "")
		assert.ErrorIs(t, err, authDomain.ErrTokenInvalid)
	})
}

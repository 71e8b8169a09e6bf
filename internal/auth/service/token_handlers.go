package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	authDomain "github.com/secretaryhq/secretary/internal/auth/domain"
	apperrors "github.com/secretaryhq/secretary/internal/errors"
)

// googleTokenHandler verifies access tokens against Google's tokeninfo endpoint.
type googleTokenHandler struct {
	client       *http.Client
	tokenInfoURL string
}

// Verify calls the tokeninfo endpoint and extracts the account email.
func (g *googleTokenHandler) Verify(ctx context.Context, accessToken string) (*authDomain.Identity, error) {
	endpoint := g.tokenInfoURL + "?access_token=" + url.QueryEscape(accessToken)

	var payload struct {
		Email string `json:"email"`
	}
	if err := fetchTokenInfo(ctx, g.client, endpoint, "", &payload); err != nil {
		return nil, err
	}
	return identityFromEmail(payload.Email, authDomain.Google)
}

// NewGoogleTokenHandler creates a token handler for Google access tokens.
func NewGoogleTokenHandler(client *http.Client, tokenInfoURL string) TokenHandler {
	return &googleTokenHandler{client: client, tokenInfoURL: tokenInfoURL}
}

// facebookTokenHandler verifies access tokens against Facebook's Graph API.
type facebookTokenHandler struct {
	client       *http.Client
	tokenInfoURL string
}

// Verify calls the Graph API me endpoint and extracts the account email.
func (f *facebookTokenHandler) Verify(ctx context.Context, accessToken string) (*authDomain.Identity, error) {
	endpoint := f.tokenInfoURL + "?fields=email&access_token=" + url.QueryEscape(accessToken)

	var payload struct {
		Email string `json:"email"`
	}
	if err := fetchTokenInfo(ctx, f.client, endpoint, "", &payload); err != nil {
		return nil, err
	}
	return identityFromEmail(payload.Email, authDomain.Facebook)
}

// NewFacebookTokenHandler creates a token handler for Facebook access tokens.
func NewFacebookTokenHandler(client *http.Client, tokenInfoURL string) TokenHandler {
	return &facebookTokenHandler{client: client, tokenInfoURL: tokenInfoURL}
}

// microsoftTokenHandler verifies access tokens against the Microsoft Graph API.
type microsoftTokenHandler struct {
	client       *http.Client
	tokenInfoURL string
}

// Verify calls the Graph API me endpoint with a bearer token. Personal
// accounts carry the address in mail, organizational ones in userPrincipalName.
func (m *microsoftTokenHandler) Verify(ctx context.Context, accessToken string) (*authDomain.Identity, error) {
	var payload struct {
		Mail              string `json:"mail"`
		UserPrincipalName string `json:"userPrincipalName"`
	}
	if err := fetchTokenInfo(ctx, m.client, m.tokenInfoURL, accessToken, &payload); err != nil {
		return nil, err
	}

	email := payload.Mail
	if email == "" {
		email = payload.UserPrincipalName
	}
	return identityFromEmail(email, authDomain.Microsoft)
}

// NewMicrosoftTokenHandler creates a token handler for Microsoft access tokens.
func NewMicrosoftTokenHandler(client *http.Client, tokenInfoURL string) TokenHandler {
	return &microsoftTokenHandler{client: client, tokenInfoURL: tokenInfoURL}
}

// fetchTokenInfo performs the introspection request. A bearerToken, when set,
// goes into the Authorization header instead of the query string.
func fetchTokenInfo(ctx context.Context, client *http.Client, endpoint, bearerToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return apperrors.Wrap(err, "failed to build token info request")
	}
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := client.Do(req)
	if err != nil {
		return authDomain.ErrProviderUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= http.StatusInternalServerError {
			return authDomain.ErrProviderUnavailable
		}
		return authDomain.ErrTokenInvalid
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(err, "failed to decode token info response")
	}
	return nil
}

func identityFromEmail(email string, provider authDomain.Provider) (*authDomain.Identity, error) {
	if email == "" {
		return nil, authDomain.ErrTokenInvalid
	}
	return &authDomain.Identity{
		Email:    strings.ToLower(email),
		Provider: provider,
	}, nil
}

package xoauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/wengro/greenhouse/internal/errors"
	"golang.org/x/oauth2"
)

// identityResponse mirrors the provider's users/me payload. Only the username
// is consumed; the rest of the object is ignored.
type identityResponse struct {
	Data struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"data"`
}

// FetchIdentityHandle resolves the authenticated user's handle using the
// token-bound HTTP client. The handle is returned lower-cased, since it is
// the primary key for profiles everywhere downstream.
func (c *Client) FetchIdentityHandle(ctx context.Context, token *oauth2.Token) (string, error) {
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.GetXIdentityURL(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrIdentityFetch, err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrIdentityFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: provider returned %d", apperrors.ErrIdentityFetch, resp.StatusCode)
	}

	var identity identityResponse
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrIdentityFetch, err)
	}

	if identity.Data.Username == "" {
		return "", fmt.Errorf("%w: response missing username", apperrors.ErrIdentityFetch)
	}

	return strings.ToLower(identity.Data.Username), nil
}

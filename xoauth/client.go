package xoauth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/wengro/greenhouse/internal/config"
	apperrors "github.com/wengro/greenhouse/internal/errors"
	"golang.org/x/oauth2"
)

// Client wraps the X (Twitter) OAuth2 authorization server. It builds PKCE
// authorization URLs, exchanges authorization codes for tokens, and resolves
// the authenticated user's handle.
type Client struct {
	config config.OAuthConfig
}

// AuthorizationRequest holds everything the start endpoint needs to hand the
// browser off to the provider: the redirect URL plus the verifier and state
// that must survive (in the session) until the callback.
type AuthorizationRequest struct {
	AuthorizationURL string
	CodeVerifier     string
	State            string
}

func New(cfg config.OAuthConfig) *Client {
	return &Client{config: cfg}
}

func (c *Client) oauth2Config(redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.config.GetXClientID(),
		ClientSecret: c.config.GetXClientSecret(),
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.config.GetXAuthURL(),
			TokenURL:  c.config.GetXTokenURL(),
			AuthStyle: oauth2.AuthStyleInHeader,
		},
		RedirectURL: redirectURL,
		Scopes:      c.config.GetXScopes(),
	}
}

// BuildAuthorizationRequest generates a fresh PKCE verifier/challenge pair and
// state token and returns the provider URL the browser must be redirected to.
func (c *Client) BuildAuthorizationRequest(callbackURL string) AuthorizationRequest {
	verifier := generateRandomString(32)
	state := generateRandomString(24)

	authURL := c.oauth2Config(callbackURL).AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", generateCodeChallenge(verifier)),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)

	return AuthorizationRequest{
		AuthorizationURL: authURL,
		CodeVerifier:     verifier,
		State:            state,
	}
}

// Exchange swaps a one-time authorization code for tokens. The redirect URL
// must match the one used when the authorization request was built.
func (c *Client) Exchange(ctx context.Context, code, codeVerifier, redirectURL string) (*oauth2.Token, error) {
	token, err := c.oauth2Config(redirectURL).Exchange(
		ctx,
		code,
		oauth2.SetAuthURLParam("code_verifier", codeVerifier),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrAuthExchange, err)
	}
	return token, nil
}

// generateRandomString creates a random base64url string
func generateRandomString(length int) string {
	b := make([]byte, length)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// generateCodeChallenge creates a PKCE code challenge from a verifier
func generateCodeChallenge(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wengro/greenhouse/internal/config"
	"github.com/wengro/greenhouse/server"
	"github.com/wengro/greenhouse/session"
	fakesubmissionrepo "github.com/wengro/greenhouse/submissions/repofake"
	"github.com/wengro/greenhouse/tokenstore"
	fakeuserrepo "github.com/wengro/greenhouse/users/repofake"
	"github.com/wengro/greenhouse/xoauth"
)

// stubProvider plays the authorization server and identity endpoint. Codes
// are single use; access tokens map back to the username configured for the
// code.
type stubProvider struct {
	mu       sync.Mutex
	username map[string]string // code -> username to return for its token
	consumed map[string]bool
	byToken  map[string]string // access token -> username

	server *httptest.Server
}

func newStubProvider(t *testing.T) *stubProvider {
	t.Helper()

	p := &stubProvider{
		username: make(map[string]string),
		consumed: make(map[string]bool),
		byToken:  make(map[string]string),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", p.tokenEndpoint)
	mux.HandleFunc("GET /identity", p.identityEndpoint)
	p.server = httptest.NewServer(mux)
	t.Cleanup(p.server.Close)

	return p
}

// IssueCode registers a one-time authorization code that authenticates as
// the given username.
func (p *stubProvider) IssueCode(code, username string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.username[code] = username
}

func (p *stubProvider) tokenEndpoint(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	code := r.FormValue("code")
	username, known := p.username[code]
	if !known || p.consumed[code] || r.FormValue("code_verifier") == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
		return
	}
	p.consumed[code] = true

	accessToken := "access-" + code
	p.byToken["Bearer "+accessToken] = username

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"access_token":  accessToken,
		"refresh_token": "refresh-" + code,
		"token_type":    "bearer",
		"expires_in":    7200,
	})
}

func (p *stubProvider) identityEndpoint(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	username, ok := p.byToken[r.Header.Get("Authorization")]
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"data": map[string]any{"id": "1", "name": username, "username": username},
	})
}

type testEnv struct {
	server      *httptest.Server
	provider    *stubProvider
	codec       *session.Codec
	users       *fakeuserrepo.FakeUserRepo
	submissions *fakesubmissionrepo.FakeSubmissionRepo
	tokens      *tokenstore.InMemory
	frontend    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	provider := newStubProvider(t)

	t.Setenv("ENV", "TEST")
	t.Setenv("SESSION_SECRET", "test-session-secret")
	t.Setenv("X_CLIENT_ID", "test-client")
	t.Setenv("X_CLIENT_SECRET", "test-secret")
	t.Setenv("X_AUTH_URL", provider.server.URL+"/authorize")
	t.Setenv("X_TOKEN_URL", provider.server.URL+"/token")
	t.Setenv("X_IDENTITY_URL", provider.server.URL+"/identity")
	t.Setenv("FRONTEND_URL", "http://frontend.test")
	t.Setenv("ALLOWED_ORIGINS", "http://frontend.test")

	cfg := config.New()
	codec := session.NewCodec(cfg.GetSessionSecret(), cfg.GetSessionCookieName())
	userRepo := fakeuserrepo.NewFakeUserRepo()
	submissionRepo := fakesubmissionrepo.NewFakeSubmissionRepo()
	tokens := tokenstore.NewInMemory(time.Hour)
	t.Cleanup(tokens.Stop)

	srv := httptest.NewServer(server.New(cfg, xoauth.New(cfg), codec, userRepo, submissionRepo, tokens))
	t.Cleanup(srv.Close)

	return &testEnv{
		server:      srv,
		provider:    provider,
		codec:       codec,
		users:       userRepo,
		submissions: submissionRepo,
		tokens:      tokens,
		frontend:    "http://frontend.test",
	}
}

// noRedirectClient returns redirects to the caller instead of following them.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// authCookie fabricates a signed authenticated-session cookie for a handle.
func (e *testEnv) authCookie(t *testing.T, handle string) *http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	err := e.codec.Write(rec, req, session.Session{
		Auth: &session.Authenticated{
			XHandle:     handle,
			AccessToken: "access",
			ExpiresAt:   time.Now().Add(time.Hour),
		},
	}, time.Hour)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func tokenEntry(access string) tokenstore.Entry {
	return tokenstore.Entry{AccessToken: access, ExpiresAt: time.Now().Add(time.Hour)}
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}

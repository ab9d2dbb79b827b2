package server

import (
	"crypto/subtle"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/wengro/greenhouse/session"
	"github.com/wengro/greenhouse/tokenstore"
)

// StartAuthHandler begins the X login flow: it stores the PKCE verifier and
// state in the session cookie and redirects the browser to the provider.
func (s *Server) StartAuthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if origin := requestOrigin(r); origin != "" {
			if !s.config.GetAllowedOrigins().IsAllowedOrigin(origin) {
				writeMessage(w, http.StatusForbidden, "origin not allowed")
				return
			}
		}

		callbackURL := strings.TrimRight(s.config.GetBaseURL(), "/") + RouteAuthCallback
		authRequest := s.oauth.BuildAuthorizationRequest(callbackURL)

		pending := session.Session{
			Pending: &session.PendingAuthorization{
				CodeVerifier: authRequest.CodeVerifier,
				State:        authRequest.State,
				CallbackURL:  callbackURL,
			},
		}
		if err := s.sessions.Write(w, r, pending, s.config.GetPendingAuthAge()); err != nil {
			log.Err(err).Msg("failed to write pending authorization cookie")
			writeMessage(w, http.StatusInternalServerError, "internal server error")
			return
		}

		http.Redirect(w, r, authRequest.AuthorizationURL, http.StatusFound)
	}
}

// OAuthCallbackHandler is the provider's redirect target. It validates the
// returned state against the pending session, exchanges the one-time code for
// tokens, resolves the handle, and sends the browser back to the front end.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := r.URL.Query().Get("state")
		code := r.URL.Query().Get("code")

		if state == "" || code == "" {
			writeMessage(w, http.StatusBadRequest, "missing state or code parameter")
			return
		}

		sess, err := s.sessions.Read(r)
		if err != nil || sess.Pending == nil {
			writeMessage(w, http.StatusBadRequest, "no authorization in progress")
			return
		}
		pending := sess.Pending

		// CSRF defense: the state must match the one issued at start,
		// exactly once. The pending authorization is cleared either way.
		if subtle.ConstantTimeCompare([]byte(pending.State), []byte(state)) != 1 {
			s.sessions.Clear(w, r)
			writeMessage(w, http.StatusBadRequest, "state mismatch")
			return
		}

		token, err := s.oauth.Exchange(r.Context(), code, pending.CodeVerifier, pending.CallbackURL)
		if err != nil {
			log.Err(err).Msg("authorization code exchange failed")
			s.sessions.Clear(w, r)
			s.redirectLoginError(w, r, "exchange_failed")
			return
		}

		handle, err := s.oauth.FetchIdentityHandle(r.Context(), token)
		if err != nil {
			log.Err(err).Msg("identity fetch failed")
			s.sessions.Clear(w, r)
			s.redirectLoginError(w, r, "identity_failed")
			return
		}

		authenticated := session.Session{
			Auth: &session.Authenticated{
				XHandle:      handle,
				AccessToken:  token.AccessToken,
				RefreshToken: token.RefreshToken,
				ExpiresAt:    token.Expiry,
			},
		}
		if err := s.sessions.Write(w, r, authenticated, s.config.GetMaxSessionAge()); err != nil {
			log.Err(err).Msg("failed to write authenticated session cookie")
			s.redirectLoginError(w, r, "session_failed")
			return
		}

		s.tokens.Put(handle, tokenstore.Entry{
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
			ExpiresAt:    token.Expiry,
		})

		redirectURL := s.frontendURL() + "/?login=success&xHandle=" + url.QueryEscape(handle)
		http.Redirect(w, r, redirectURL, http.StatusFound)
	}
}

// MeHandler reports the session's identity. It always answers 200; an absent
// or invalid session is simply "not authenticated".
func (s *Server) MeHandler() http.HandlerFunc {
	type meResponse struct {
		Authenticated bool   `json:"authenticated"`
		XHandle       string `json:"xHandle,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Read(r)
		if err != nil || !sess.IsAuthenticated() {
			writeJSON(w, http.StatusOK, meResponse{Authenticated: false})
			return
		}
		writeJSON(w, http.StatusOK, meResponse{Authenticated: true, XHandle: sess.Auth.XHandle})
	}
}

// LogoutHandler clears the session unconditionally. Calling it twice is fine.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess, err := s.sessions.Read(r); err == nil && sess.IsAuthenticated() {
			s.tokens.Delete(sess.Auth.XHandle)
		}
		s.sessions.Clear(w, r)
		writeJSON(w, http.StatusOK, envelope{Success: true})
	}
}

func (s *Server) redirectLoginError(w http.ResponseWriter, r *http.Request, reason string) {
	http.Redirect(w, r, s.frontendURL()+"/?login=error&error="+url.QueryEscape(reason), http.StatusFound)
}

func (s *Server) frontendURL() string {
	return strings.TrimRight(s.config.GetFrontendURL(), "/")
}

// requestOrigin returns the origin the browser declared, falling back to the
// Referer's origin for plain navigations that carry no Origin header.
func requestOrigin(r *http.Request) string {
	if origin := r.Header.Get("Origin"); origin != "" {
		return strings.TrimRight(origin, "/")
	}
	referer := r.Header.Get("Referer")
	if referer == "" {
		return ""
	}
	parsed, err := url.Parse(referer)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}

package server

import (
	"context"
	"net/http"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyHandle stores the authenticated user's lower-cased X handle
const ContextKeyHandle ContextKey = "x_handle"

// RequireSessionAuth validates the signed session cookie and injects the
// authenticated handle into the request context. Requests without a valid
// authenticated session get a 401 envelope.
func (s *Server) RequireSessionAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sess, err := s.sessions.Read(r)
			if err != nil || !sess.IsAuthenticated() {
				writeMessage(w, http.StatusUnauthorized, "authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyHandle, sess.Auth.XHandle)
			next(w, r.WithContext(ctx))
		}
	}
}

// HandleFromContext returns the authenticated handle injected by
// RequireSessionAuth, or "" when the request is anonymous.
func HandleFromContext(ctx context.Context) string {
	handle, _ := ctx.Value(ContextKeyHandle).(string)
	return handle
}

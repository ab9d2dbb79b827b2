package session

import "time"

// Session is the whole client-side session state carried inside the signed
// cookie. At most one of Pending or Auth is set: Pending while an OAuth
// handshake is in flight, Auth once the callback has completed.
type Session struct {
	Pending *PendingAuthorization `json:"pending,omitempty"`
	Auth    *Authenticated        `json:"auth,omitempty"`
}

// PendingAuthorization tracks an in-flight OAuth handshake between the start
// and callback endpoints. It is consumed exactly once at the callback and
// never persisted server-side.
type PendingAuthorization struct {
	CodeVerifier string `json:"code_verifier"`
	State        string `json:"state"`
	CallbackURL  string `json:"callback_url"`
}

// Authenticated is the post-login identity bound to the browser session.
type Authenticated struct {
	XHandle      string    `json:"x_handle"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// IsAuthenticated reports whether the session carries a logged-in identity.
func (s Session) IsAuthenticated() bool {
	return s.Auth != nil && s.Auth.XHandle != ""
}

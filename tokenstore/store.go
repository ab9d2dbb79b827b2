package tokenstore

import "time"

// Entry holds the provider tokens cached for one user.
type Entry struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Store caches provider tokens keyed by handle so the server can call the
// provider on a user's behalf without round-tripping the browser cookie. It
// is injected into the server, so a multi-instance deployment can swap in a
// shared cache without touching handler code.
type Store interface {
	Put(handle string, entry Entry)
	Get(handle string) (Entry, bool)
	Delete(handle string)
}

// Expired reports whether the entry's expiry has passed. Zero ExpiresAt
// means the entry never expires.
func (e Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && e.ExpiresAt.Before(now)
}

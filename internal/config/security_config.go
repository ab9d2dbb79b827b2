package config

import "time"

type SecurityConfig interface {
	GetSessionSecret() string
	GetSessionCookieName() string
	GetMaxSessionAge() time.Duration
	GetPendingAuthAge() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetSessionSecret returns the HMAC key used to sign session cookies.
func (Security) GetSessionSecret() string {
	return GetEnv("SESSION_SECRET", "dev-session-secret")
}

func (Security) GetSessionCookieName() string {
	return GetEnv("SESSION_COOKIE", "greenhouse_session")
}

func (Security) GetMaxSessionAge() time.Duration {
	return 2 * time.Hour
}

// GetPendingAuthAge bounds how long the cookie holding an in-flight OAuth
// handshake stays valid.
func (Security) GetPendingAuthAge() time.Duration {
	return 15 * time.Minute
}

package config

// OAuthConfig carries the X (Twitter) OAuth2 client settings. The client
// secret may be empty for a public client relying on PKCE alone.
type OAuthConfig interface {
	GetXClientID() string
	GetXClientSecret() string
	GetXAuthURL() string
	GetXTokenURL() string
	GetXIdentityURL() string
	GetXScopes() []string
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetXClientID() string {
	return GetEnv("X_CLIENT_ID", "")
}

func (OAuth) GetXClientSecret() string {
	return GetEnv("X_CLIENT_SECRET", "")
}

func (OAuth) GetXAuthURL() string {
	return GetEnv("X_AUTH_URL", "https://x.com/i/oauth2/authorize")
}

func (OAuth) GetXTokenURL() string {
	return GetEnv("X_TOKEN_URL", "https://api.x.com/2/oauth2/token")
}

func (OAuth) GetXIdentityURL() string {
	return GetEnv("X_IDENTITY_URL", "https://api.x.com/2/users/me")
}

func (OAuth) GetXScopes() []string {
	return []string{"tweet.read", "users.read", "offline.access"}
}

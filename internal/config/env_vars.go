package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar   = "PORT"
	appNameVar   = "APP_NAME"
	baseURLVar   = "BASE_URL"
	frontendVar  = "FRONTEND_URL"
	staticDirVar = "STATIC_DIR"
	databaseVar  = "DATABASE_URL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "3001")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Greenhouse")
}

// GetBaseURL returns the externally visible base URL of this server.
// The OAuth callback URL is derived from it.
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:3001")
}

// GetFrontendURL returns the front-end origin the browser is sent back to
// after the OAuth flow completes.
func (EnvVars) GetFrontendURL() string {
	return GetEnv(frontendVar, "http://localhost:3001")
}

func (EnvVars) GetStaticDir() string {
	return GetEnv(staticDirVar, "./public")
}

// GetDatabaseURL returns the postgres connection string. Empty means the
// server runs on the in-memory repositories.
func (EnvVars) GetDatabaseURL() string {
	return GetEnv(databaseVar, "")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

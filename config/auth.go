package config

import "time"

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// TokenSecret signs issued bearer tokens (HMAC-SHA256).
	// Required outside development mode.
	TokenSecret string `env:"AUTH_TOKEN_SECRET"`

	// SessionTTL is the lifetime of an issued token and its
	// server-side session record.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"24h"`

	// SeedAdminEmail and SeedAdminPassword create the initial admin
	// account on development-mode startup (the stored record carries
	// a bcrypt hash, never this value).
	SeedAdminEmail    string `env:"AUTH_SEED_ADMIN_EMAIL"    envDefault:""`
	SeedAdminPassword string `env:"AUTH_SEED_ADMIN_PASSWORD" envDefault:""`
}

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 24 * time.Hour
	}
}

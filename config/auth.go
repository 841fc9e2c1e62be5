package config

import (
	"strings"
	"time"

	"main/utils"
)

type AuthConfig struct {
	// PasswordHash is a bcrypt hash of the shared application password.
	// When empty, password login is disabled.
	PasswordHash string
	// AllowedEmails is the allow-list for email login. When empty,
	// email login is disabled.
	AllowedEmails   []string
	JWTSecret       string
	TokenLifetime   time.Duration
	SessionLifetime time.Duration
	RedisURL        string
}

func LoadAuthConfig() AuthConfig {
	var emails []string
	for _, e := range strings.Split(utils.GetEnvAsString("AUTHORIZED_EMAILS", ""), ",") {
		if trimmed := strings.TrimSpace(e); trimmed != "" {
			emails = append(emails, strings.ToLower(trimmed))
		}
	}

	return AuthConfig{
		PasswordHash:    utils.GetEnvAsString("APP_PASSWORD_HASH", ""),
		AllowedEmails:   emails,
		JWTSecret:       utils.GetEnvAsString("JWT_SECRET_KEY", ""),
		TokenLifetime:   utils.GetEnvAsDuration("JWT_EXPIRATION_TIME", time.Hour),
		SessionLifetime: utils.GetEnvAsDuration("SESSION_DURATION", 24*time.Hour),
		RedisURL:        utils.GetEnvAsString("REDIS_URL", "redis://localhost:6379/0"),
	}
}

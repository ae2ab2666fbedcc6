package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays configuration from environment variables. Unset variables
// leave the current values untouched; unparsable numeric values are ignored.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_ACCESS_SECRET"); ok {
		config.JWTAccessSecret = v
	}
	if v, ok := os.LookupEnv("JWT_REFRESH_SECRET"); ok {
		config.JWTRefreshSecret = v
	}
	if v, ok := os.LookupEnv("ACCESS_TOKEN_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.AccessTokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("REFRESH_TOKEN_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.RefreshTokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("PASSWORD_HASH_COST"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.PasswordHashCost = n
		}
	}
	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		config.CORSOrigins = v
	}
	if v, ok := os.LookupEnv("SMTP_HOST"); ok {
		config.SMTPHost = v
	}
	if v, ok := os.LookupEnv("SMTP_PORT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.SMTPPort = n
		}
	}
	if v, ok := os.LookupEnv("SMTP_USER"); ok {
		config.SMTPUser = v
	}
	if v, ok := os.LookupEnv("SMTP_PASSWORD"); ok {
		config.SMTPPassword = v
	}
}

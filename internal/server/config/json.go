package config

import (
	"encoding/json"
	"os"

	"github.com/stnkworkshop/auth-service/internal/flagx"
	"github.com/stnkworkshop/auth-service/internal/timex"
)

// jsonConfig is the DTO for reading JSON configuration files. Duration fields
// use timex.Duration so both "24h" strings and integer nanoseconds parse.
type jsonConfig struct {
	EndpointAddr                 *string         `json:"endpoint_addr"`
	DatabaseDSN                  *string         `json:"database_dsn"`
	JWTAccessSecret              *string         `json:"jwt_access_secret"`
	JWTRefreshSecret             *string         `json:"jwt_refresh_secret"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	PasswordHashCost             *int            `json:"password_hash_cost"`
	CORSOrigins                  *string         `json:"cors_origins"`
	SMTPHost                     *string         `json:"smtp_host"`
	SMTPPort                     *int            `json:"smtp_port"`
	SMTPUser                     *string         `json:"smtp_user"`
	SMTPPassword                 *string         `json:"smtp_password"`
}

// parseJSON loads configuration from the file given via -c/-config, if any.
// Absent fields leave the current values untouched. Unreadable or invalid
// files panic: a broken explicit config is a startup error.
func parseJSON(config *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &jsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.JWTAccessSecret != nil {
		config.JWTAccessSecret = *c.JWTAccessSecret
	}
	if c.JWTRefreshSecret != nil {
		config.JWTRefreshSecret = *c.JWTRefreshSecret
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.PasswordHashCost != nil {
		config.PasswordHashCost = *c.PasswordHashCost
	}
	if c.CORSOrigins != nil {
		config.CORSOrigins = *c.CORSOrigins
	}
	if c.SMTPHost != nil {
		config.SMTPHost = *c.SMTPHost
	}
	if c.SMTPPort != nil {
		config.SMTPPort = *c.SMTPPort
	}
	if c.SMTPUser != nil {
		config.SMTPUser = *c.SMTPUser
	}
	if c.SMTPPassword != nil {
		config.SMTPPassword = *c.SMTPPassword
	}
}

package config

import "time"

// JWTConfig holds token verification configuration. The service only
// verifies tokens; issuance belongs to the identity provider.
type JWTConfig struct {
	Secret            string `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
	Issuer            string `env:"JWT_ISSUER" env-default:""`
	Audience          string `env:"JWT_AUDIENCE" env-default:""`
	AccessTokenExpiry string `env:"ACCESS_TOKEN_EXPIRY" env-default:"15m"`
}

// ParseAccessTokenExpiry parses the access token expiry duration.
func (j JWTConfig) ParseAccessTokenExpiry() (time.Duration, error) {
	return time.ParseDuration(j.AccessTokenExpiry)
}

package auth

import "time"

// JWTConfig holds token signing parameters.
type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
	Issuer         string
}

// Config holds the auth package configuration.
type Config struct {
	JWT JWTConfig
}

// DefaultConfig returns the configuration used when the environment
// does not override anything. The secret key MUST be replaced outside
// local development.
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTokenTTL: 24 * time.Hour,
			Issuer:         "scout",
		},
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
)

// JWTConfig holds the signing secret and token lifetime for API bearer
// tokens. A nil JWTConfig on the server disables auth entirely.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig builds the JWT configuration from the environment:
// JWT_SECRET (required) and JWT_EXPIRATION_HOURS (default 24, minimum 1).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	expirationHours := 24
	if expirationStr := os.Getenv("JWT_EXPIRATION_HOURS"); expirationStr != "" {
		parsed, err := strconv.Atoi(expirationStr)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
		}
		if parsed < 1 {
			return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", parsed)
		}
		expirationHours = parsed
	}

	return &JWTConfig{
		Secret:          secret,
		ExpirationHours: expirationHours,
	}, nil
}

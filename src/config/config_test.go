package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/goldcoin_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PLAID_CLIENT_ID", "client-id")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "5")

	cfg := Load()

	assert.Equal(t, "postgres://localhost/goldcoin_test", cfg.DatabaseURL)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "client-id", cfg.PlaidClientID)
	assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)

	// Defaults
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sandbox", cfg.PlaidEnv)
	assert.Equal(t, "https://api.openai.com/v1", cfg.AIBaseURL)
}

func TestLoad_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/goldcoin_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "not-a-number")

	cfg := Load()
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
}

package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every externally-provided setting. It is built once in
// main and passed by reference; nothing reads the environment after Load.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret  string
	CronSecret string

	PlaidClientID string
	PlaidSecret   string
	PlaidEnv      string

	AIAPIKey  string
	AIBaseURL string
	AIModel   string

	ResendAPIKey string
	MailFrom     string

	UpstreamTimeout time.Duration
}

func Load() *Config {
	// Load .env file if present
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		CronSecret:      getEnv("CRON_SECRET", ""),
		PlaidClientID:   getEnv("PLAID_CLIENT_ID", ""),
		PlaidSecret:     getEnv("PLAID_SECRET", ""),
		PlaidEnv:        getEnv("PLAID_ENV", "sandbox"),
		AIAPIKey:        getEnv("AI_API_KEY", ""),
		AIBaseURL:       getEnv("AI_BASE_URL", "https://api.openai.com/v1"),
		AIModel:         getEnv("AI_MODEL", "gpt-4o-mini"),
		ResendAPIKey:    getEnv("RESEND_API_KEY", ""),
		MailFrom:        getEnv("MAIL_FROM", "reminders@goldcoin.app"),
		UpstreamTimeout: getDurationEnv("UPSTREAM_TIMEOUT_SECONDS", 10*time.Second),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs <= 0 {
		log.Printf("ERROR: Invalid %s value %q, using default", key, value)
		return fallback
	}
	return time.Duration(secs) * time.Second
}

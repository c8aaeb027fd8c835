package config

import (
	"os"
)

// Denial policies for the authorship guard. The blog historically flip-flopped
// between redirecting a non-author to the post and showing an error page, so
// the response is configuration, not code.
const (
	DenyRedirect = "redirect"
	DenyError    = "error"
)

type Config struct {
	Port          string
	DatabaseURL   string
	SessionSecret string
	DenialPolicy  string
}

// Load reads settings from the environment, with local-dev defaults.
func Load() *Config {
	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		DatabaseURL:   getenv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=blogicum port=5432 sslmode=disable"),
		SessionSecret: getenv("SESSION_SECRET", "secret_key_change_me"),
		DenialPolicy:  getenv("PERMISSION_DENIAL", DenyRedirect),
	}
	if cfg.DenialPolicy != DenyError {
		cfg.DenialPolicy = DenyRedirect
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment represents the application environment
type Environment string

const (
	// Development environment - localhost, debug enabled
	Development Environment = "development"
	// Production environment - real domain, production settings
	Production Environment = "production"
)

// EnvConfig holds environment-specific configuration
type EnvConfig struct {
	// Environment name (development, production)
	Env Environment

	// Domain settings
	Domain        string
	BaseURL       string
	AllowedOrigin string

	// Feature flags
	Debug bool

	LogLevel string

	// Overrides for config.json values
	Listen           string
	BackendURL       string
	LoginRPM         int
	ContactRateLimit int

	// Session cookies
	CookieSecure bool
	CookieDomain string

	// Metrics listener basic auth (bcrypt hash, see scripts/hash-password.go)
	MetricsUser         string
	MetricsPasswordHash string
}

// LoadEnv loads environment configuration from environment variables
func LoadEnv() *EnvConfig {
	env := getEnvOrDefault("APP_ENV", "development")

	cfg := &EnvConfig{
		Env:      Environment(strings.ToLower(env)),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}

	switch cfg.Env {
	case Production:
		cfg.Domain = getEnvOrDefault("DOMAIN", "inno8.tech")
		cfg.BaseURL = getEnvOrDefault("BASE_URL", "https://"+cfg.Domain)
		cfg.AllowedOrigin = getEnvOrDefault("ALLOWED_ORIGIN", cfg.BaseURL)
		cfg.Debug = getEnvOrDefault("DEBUG", "false") == "true"
		cfg.CookieSecure = getEnvOrDefault("COOKIE_SECURE", "true") == "true"
	default:
		cfg.Env = Development // Normalize unknown envs to development

		cfg.Domain = getEnvOrDefault("DOMAIN", "localhost:3000")
		cfg.BaseURL = getEnvOrDefault("BASE_URL", "http://"+cfg.Domain)
		cfg.AllowedOrigin = "*"
		cfg.Debug = getEnvOrDefault("DEBUG", "true") == "true"
		cfg.CookieSecure = getEnvOrDefault("COOKIE_SECURE", "false") == "true"
		if cfg.LogLevel == "info" {
			cfg.LogLevel = "debug" // Dev default
		}
	}

	cfg.CookieDomain = getEnvOrDefault("COOKIE_DOMAIN", "")
	cfg.Listen = getEnvOrDefault("LISTEN", "")
	cfg.BackendURL = getEnvOrDefault("BACKEND_URL", "")
	cfg.LoginRPM = parseIntOrDefault(getEnvOrDefault("AUTH_LOGIN_RPM", ""), 0)
	cfg.ContactRateLimit = parseIntOrDefault(getEnvOrDefault("CONTACT_RATE_LIMIT", ""), 0)

	cfg.MetricsUser = getEnvOrDefault("METRICS_USER", "")
	cfg.MetricsPasswordHash = getEnvOrDefault("METRICS_PASSWORD_HASH", "")

	return cfg
}

// IsDevelopment returns true if running in development mode
func (e *EnvConfig) IsDevelopment() bool {
	return e.Env == Development
}

// IsProduction returns true if running in production mode
func (e *EnvConfig) IsProduction() bool {
	return e.Env == Production
}

// String returns the environment name
func (e Environment) String() string {
	return string(e)
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntOrDefault parses a non-negative integer, returning default on error
func parseIntOrDefault(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}

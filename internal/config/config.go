package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config holds all site configuration values.
type Config struct {
	Listen             string `json:"listen"`
	MetricsListen      string `json:"metrics_listen"`
	BackendURL         string `json:"backend_url"`
	BackendTimeoutSec  int    `json:"backend_timeout_sec"`
	MaintenancePollSec int    `json:"maintenance_poll_sec"`
	ShutdownTimeoutSec int    `json:"shutdown_timeout_sec"`
	ContactRateLimit   int    `json:"contact_rate_limit"` // submissions per minute per IP
	LoginRateLimitRPM  int    `json:"login_rate_limit_rpm"`

	// Environment configuration (loaded from env vars)
	Env *EnvConfig `json:"-"`
}

// Load reads configuration from config.json with sensible defaults.
// Environment variables win over the file for the values they cover.
func Load() *Config {
	cfg := &Config{
		Listen:             ":3000",
		MetricsListen:      ":9090",
		BackendURL:         "http://localhost:8000/api",
		BackendTimeoutSec:  10,
		MaintenancePollSec: 5,
		ShutdownTimeoutSec: 30,
		ContactRateLimit:   5,
		LoginRateLimitRPM:  10,
		Env:                LoadEnv(),
	}

	if file, err := os.Open("config.json"); err == nil {
		defer file.Close()
		json.NewDecoder(file).Decode(cfg)
	}

	cfg.applyEnv()
	cfg.BackendURL = strings.TrimRight(strings.TrimSpace(cfg.BackendURL), "/")

	return cfg
}

func (c *Config) applyEnv() {
	if c.Env == nil {
		return
	}
	if c.Env.BackendURL != "" {
		c.BackendURL = c.Env.BackendURL
	}
	if c.Env.Listen != "" {
		c.Listen = c.Env.Listen
	}
	if c.Env.LoginRPM > 0 {
		c.LoginRateLimitRPM = c.Env.LoginRPM
	}
	if c.Env.ContactRateLimit > 0 {
		c.ContactRateLimit = c.Env.ContactRateLimit
	}
}

// BackendTimeout returns the per-request timeout for backend calls.
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.BackendTimeoutSec) * time.Second
}

// MaintenancePollInterval returns how often the maintenance flag is polled.
func (c *Config) MaintenancePollInterval() time.Duration {
	return time.Duration(c.MaintenancePollSec) * time.Second
}

// ShutdownTimeout returns how long in-flight requests may drain on shutdown.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSec) * time.Second
}

// Validate checks the configuration for errors and returns helpful messages.
func (c *Config) Validate() error {
	var errs []string

	if c.Listen == "" {
		errs = append(errs, "listen address is required")
	}
	if c.MetricsListen == c.Listen {
		errs = append(errs, "metrics_listen must differ from listen")
	}

	if c.BackendURL == "" {
		errs = append(errs, "backend_url is required")
	} else if u, err := url.Parse(c.BackendURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("backend_url is not an absolute URL: %s", c.BackendURL))
	}

	if c.BackendTimeoutSec <= 0 {
		errs = append(errs, "backend_timeout_sec must be positive")
	}
	if c.MaintenancePollSec <= 0 {
		errs = append(errs, "maintenance_poll_sec must be positive")
	}
	if c.ShutdownTimeoutSec <= 0 {
		errs = append(errs, "shutdown_timeout_sec must be positive")
	}
	if c.ContactRateLimit <= 0 {
		errs = append(errs, "contact_rate_limit must be positive")
	}
	if c.LoginRateLimitRPM <= 0 {
		errs = append(errs, "login_rate_limit_rpm must be positive")
	}

	if c.Env != nil && c.Env.MetricsUser != "" && c.Env.MetricsPasswordHash == "" {
		errs = append(errs, "METRICS_PASSWORD_HASH is required when METRICS_USER is set")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}

// Package config loads kzmaps configuration from the environment.
package config

import (
	"fmt"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pfrederiksen/kzmaps/internal/globalapi"
	"github.com/pfrederiksen/kzmaps/internal/logger"
	"github.com/pfrederiksen/kzmaps/internal/schnoseapi"
)

// Config holds upstream endpoints and client settings
type Config struct {
	GlobalAPIURL  string        `env:"KZMAPS_GLOBAL_API_URL" envDefault:"https://kztimerglobal.com/api/v2.0/"`
	SchnoseAPIURL string        `env:"KZMAPS_SCHNOSE_API_URL" envDefault:"https://schnose.xyz/api/"`
	HTTPTimeout   time.Duration `env:"KZMAPS_HTTP_TIMEOUT" envDefault:"30s"`
	UserAgent     string        `env:"KZMAPS_USER_AGENT" envDefault:"kzmaps/1.0 (github.com/pfrederiksen/kzmaps)"`
	LogLevel      string        `env:"KZMAPS_LOG_LEVEL" envDefault:"INFO"`
}

// ParseEnv loads configuration from environment variables
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a Config and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values env parsing cannot
func (c *Config) Validate() error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("KZMAPS_HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("KZMAPS_LOG_LEVEL: %w", err)
	}
	return nil
}

// Level returns the configured log level, INFO if it does not parse
func (c *Config) Level() logger.Level {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return logger.LevelInfo
	}
	return level
}

// HTTPClient returns an http.Client using the configured timeout
func (c *Config) HTTPClient() *http.Client {
	return &http.Client{Timeout: c.HTTPTimeout}
}

// GlobalAPI returns a GlobalAPI client for the configured endpoint
func (c *Config) GlobalAPI() *globalapi.Client {
	return globalapi.NewClient(c.GlobalAPIURL, c.UserAgent, c.HTTPClient())
}

// SchnoseAPI returns a SchnoseAPI client for the configured endpoint
func (c *Config) SchnoseAPI() *schnoseapi.Client {
	return schnoseapi.NewClient(c.SchnoseAPIURL, c.UserAgent, c.HTTPClient())
}

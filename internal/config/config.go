// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all environment-driven configuration. The shared sudo
// secret and the database path are validated before the server starts
// accepting requests.
type Config struct {
	Port         string
	DBPath       string
	MotdPath     string
	SitePath     string
	SudoPassword string
	PollInterval time.Duration
	FrontendURL  string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	pollMs := getEnvInt("POLL_INTERVAL_MS", 2000)
	if pollMs <= 0 {
		pollMs = 2000
	}

	cfg := &Config{
		Port:         getEnv("PORT", "3000"),
		DBPath:       getEnv("DB_PATH", "./data/console.db"),
		MotdPath:     getEnv("MOTD_PATH", "./data/motd.txt"),
		SitePath:     getEnv("SITE_CONFIG_PATH", "./config/config.json"),
		SudoPassword: getEnv("SUDO_PASSWORD", ""),
		PollInterval: time.Duration(pollMs) * time.Millisecond,
		FrontendURL:  getEnv("FRONTEND_URL", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.MotdPath == "" {
		return fmt.Errorf("MOTD_PATH cannot be empty")
	}
	if c.SitePath == "" {
		return fmt.Errorf("SITE_CONFIG_PATH cannot be empty")
	}
	if c.SudoPassword == "" {
		return fmt.Errorf("SUDO_PASSWORD cannot be empty")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL_MS must be > 0")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

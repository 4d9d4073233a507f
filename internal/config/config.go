// Package config handles sdq configuration loading.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvSite     = "JIRA_SITE"
	EnvEmail    = "JIRA_EMAIL"
	EnvAPIToken = "JIRA_API_TOKEN"
	EnvLogLevel = "SDQ_LOG_LEVEL"
	EnvTimeout  = "SDQ_TIMEOUT"
)

// Config is the root configuration for sdq.
type Config struct {
	Site     string        `yaml:"site"`      // Jira site base URL, e.g. https://example.atlassian.net
	Email    string        `yaml:"email"`     // Account email for API token auth
	APIToken string        `yaml:"api_token"` // Atlassian API token
	Timeout  time.Duration `yaml:"timeout"`   // Upstream request timeout, 0 = none
	LogLevel string        `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/sdq/config.yaml, falling back to
// ~/.config/sdq/config.yaml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sdq", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sdq", "config.yaml")
}

// Load reads the config file at path and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.Site = strings.TrimRight(strings.TrimSpace(cfg.Site), "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that may also be set from flags after Load.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvSite); v != "" {
		c.Site = v
	}
	if v := os.Getenv(EnvEmail); v != "" {
		c.Email = v
	}
	if v := os.Getenv(EnvAPIToken); v != "" {
		c.APIToken = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		c.Timeout = d
	}
	return nil
}

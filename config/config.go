// Package config loads client configuration from the environment or from
// JSON, YAML, or TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"github.com/alkaid-labs/fetch"
)

// Config holds all client configuration.
type Config struct {
	BaseURL       string            `envconfig:"BASE_URL" json:"base_url" yaml:"base_url" toml:"base_url"`
	TimeoutMillis int               `envconfig:"TIMEOUT_MS" default:"30000" json:"timeout_ms" yaml:"timeout_ms" toml:"timeout_ms"`
	UserAgent     string            `envconfig:"USER_AGENT" json:"user_agent" yaml:"user_agent" toml:"user_agent"`
	RetryCount    int               `envconfig:"RETRY_COUNT" json:"retry_count" yaml:"retry_count" toml:"retry_count"`
	RateLimit     float64           `envconfig:"RATE_LIMIT" json:"rate_limit" yaml:"rate_limit" toml:"rate_limit"`
	Headers       map[string]string `envconfig:"HEADERS" json:"headers" yaml:"headers" toml:"headers"`
	ErrorCodes    []int64           `envconfig:"ERROR_CODES" json:"error_codes" yaml:"error_codes" toml:"error_codes"`
	RequestIDs    bool              `envconfig:"REQUEST_IDS" json:"request_ids" yaml:"request_ids" toml:"request_ids"`
	Logging       LogConfig         `json:"logging" yaml:"logging" toml:"logging"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" json:"level" yaml:"level" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" json:"development" yaml:"development" toml:"development"`
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		TimeoutMillis: 30000,
		Logging:       LogConfig{Level: "info"},
	}
}

// FromEnv loads configuration from FETCH_-prefixed environment variables.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("fetch", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// FromFile loads configuration from a file, dispatching on extension:
// .json, .yaml/.yml, or .toml.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = sonic.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Options maps the configuration onto client construction options.
func (c *Config) Options() []fetch.Option {
	opts := []fetch.Option{
		fetch.WithTimeout(time.Duration(c.TimeoutMillis) * time.Millisecond),
	}
	if c.BaseURL != "" {
		opts = append(opts, fetch.WithBaseURL(c.BaseURL))
	}
	if c.UserAgent != "" {
		opts = append(opts, fetch.WithUserAgent(c.UserAgent))
	}
	if c.RetryCount > 0 {
		opts = append(opts, fetch.WithRetryCount(c.RetryCount))
	}
	if c.RateLimit > 0 {
		opts = append(opts, fetch.WithRateLimit(c.RateLimit))
	}
	if len(c.Headers) > 0 {
		opts = append(opts, fetch.WithHeaders(c.Headers))
	}
	if len(c.ErrorCodes) > 0 {
		opts = append(opts, fetch.WithErrorCodes(c.ErrorCodes...))
	}
	if c.RequestIDs {
		opts = append(opts, fetch.WithRequestIDs())
	}
	return opts
}

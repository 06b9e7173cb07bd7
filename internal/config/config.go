// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the CLI and the proxy read from the environment.
// The token is the integration's bearer credential; it is never logged.
type Config struct {
	Token   string `env:"NOTION_TOKEN"`
	Version string `env:"NOTION_VERSION" envDefault:"2022-06-28"`
	BaseURL string `env:"NOTION_BASE_URL" envDefault:"https://api.notion.com"`

	CacheDir   string        `env:"NOTION_CACHE_DIR"`
	CacheTTL   time.Duration `env:"NOTION_CACHE_TTL" envDefault:"5m"`
	MaxRetries uint64        `env:"NOTION_MAX_RETRIES" envDefault:"3"`

	ProxyAddr     string `env:"PROXY_ADDR" envDefault:":8787"`
	AllowedOrigin string `env:"PROXY_ALLOWED_ORIGIN" envDefault:"*"`
}

// Load reads configuration from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate ensures the pieces every caller needs are present
func (c Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("NOTION_TOKEN is required - create an integration and set its secret")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("NOTION_BASE_URL must not be empty")
	}
	return nil
}

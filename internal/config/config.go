// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the pipeline needs. Credentials are required
// only when fetching; the serve-only paths don't touch them.
type Config struct {
	Username string `env:"LITTERBOT_USERNAME"`
	Password string `env:"LITTERBOT_PASSWORD"`
	CatName  string `env:"CAT_NAME" envDefault:"Kitty"`

	Timezone string `env:"LOCAL_TZ" envDefault:"America/Los_Angeles"`

	Port        int           `env:"PORT" envDefault:"8080"`
	DatabaseURL string        `env:"DATABASE_URL" envDefault:"file:litterstats.db"`
	SiteDir     string        `env:"SITE_DIR" envDefault:"site"`
	FetchLimit  int           `env:"FETCH_LIMIT" envDefault:"1000"`
	FetchEvery  time.Duration `env:"FETCH_INTERVAL" envDefault:"1h"`
	APIBaseURL  string        `env:"LITTERBOT_API_URL"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Location resolves the configured local timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// RequireCredentials fails when fetch credentials are unset.
func (c Config) RequireCredentials() error {
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("LITTERBOT_USERNAME and LITTERBOT_PASSWORD must be set")
	}
	return nil
}

// Package config loads server configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds everything cmd/server needs. Flags may override the
// parsed values.
type Config struct {
	Port   int    `env:"PORT" envDefault:"8080"`
	DBPath string `env:"DB_PATH" envDefault:"courtside.db"`

	// GatewayURL points at the payment provider API. Empty means the
	// in-memory fake gateway (offline development).
	GatewayURL string `env:"GATEWAY_URL"`
	GatewayKey string `env:"GATEWAY_API_KEY"`

	// PlansPath is an optional plans.yaml overriding the built-in
	// product catalog.
	PlansPath string `env:"PLANS_PATH"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

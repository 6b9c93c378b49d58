// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (Redis, stores) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the GrossStore API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Key-Value store for persisted session records
	RedisURL string `env:"REDIS_URL,required"`

	// Signing secret for access tokens
	SessionSecret string `env:"SESSION_SECRET,required"`

	// MockLatencyMS is the simulated network latency applied to every
	// directory and inventory operation. Demo flavour only; set to 0 to
	// disable (tests do).
	MockLatencyMS int `env:"MOCK_LATENCY_MS" envDefault:"300"`

	// LiveSampleInterval is how often the dashboard live feed re-samples.
	LiveSampleInterval time.Duration `env:"LIVE_SAMPLE_INTERVAL" envDefault:"3s"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// MockLatency returns the simulated latency as a duration.
func (c *Config) MockLatency() time.Duration {
	if c.MockLatencyMS <= 0 {
		return 0
	}
	return time.Duration(c.MockLatencyMS) * time.Millisecond
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

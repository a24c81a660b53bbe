// Phototeka - Mock Photo-Sharing REST API with Tiered Access Control
// Copyright 2026 Phototeka contributors
// SPDX-License-Identifier: MIT
// https://github.com/phototeka/phototeka

// Package config handles application configuration for Phototeka.
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, an optional YAML config file,
// and built-in defaults.
package config

import (
	"fmt"
	"time"

	"github.com/phototeka/phototeka/internal/validation"
)

// Config is the root configuration for the Phototeka server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Data     DataConfig     `koanf:"data"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host" validate:"required"`
	Port int    `koanf:"port" validate:"required,min=1,max=65535"`

	// ReadTimeout and WriteTimeout bound per-request I/O.
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"min=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"min=0"`

	// ShutdownTimeout is how long to wait for in-flight requests on shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=0"`
}

// DataConfig holds the JSON fixture locations for the mock data set.
type DataConfig struct {
	// DBPath is the db.json fixture with the users/albums/photos/comments
	// collections.
	DBPath string `koanf:"db_path" validate:"required"`

	// AccountsPath is the accounts.json fixture with the credential list.
	AccountsPath string `koanf:"accounts_path" validate:"required"`
}

// SecurityConfig holds authentication and request-throttling settings.
type SecurityConfig struct {
	// Realm is the HTTP Basic realm advertised in WWW-Authenticate challenges.
	Realm string `koanf:"realm" validate:"required"`

	RateLimitReqs     int           `koanf:"rate_limit_requests" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"required"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"required,oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Addr returns the host:port listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

/*
Package config loads server configuration from an optional TOML file.

PURPOSE:
  Keeps deployment knobs (listen address, database path, log settings) out
  of the binary. A missing file is not an error: every field has a default
  so `server` with no arguments runs against a local SQLite file.

PRECEDENCE:
  defaults < TOML file < command-line flags (applied in cmd/server).
*/
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
}

type ServerConfig struct {
	Port            int `toml:"port"`
	ReadTimeoutSec  int `toml:"read_timeout_sec"`
	WriteTimeoutSec int `toml:"write_timeout_sec"`
	IdleTimeoutSec  int `toml:"idle_timeout_sec"`
	ShutdownSec     int `toml:"shutdown_sec"`
}

type DatabaseConfig struct {
	// Path is the SQLite database file; ":memory:" runs without a file.
	Path string `toml:"path"`
}

type LoggingConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `toml:"level"`
	// Development switches to the human-readable console encoder.
	Development bool `toml:"development"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 15,
			IdleTimeoutSec:  60,
			ShutdownSec:     30,
		},
		Database: DatabaseConfig{Path: "compensation.db"},
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Load reads a TOML file over the defaults. An empty path or a missing file
// yields the defaults unchanged; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the loaded values for obvious mistakes.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("config: database path must not be empty")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Logging.Level)
	}
	return nil
}

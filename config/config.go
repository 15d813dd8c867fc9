// ABOUTME: Application configuration loaded from .env files and environment variables
// ABOUTME: Resolves the database path under XDG data home and feed builder defaults
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// AppName names the XDG data directory.
	AppName = "courtside"

	// DatabaseFileName is the SQLite file inside the data directory.
	DatabaseFileName = "courtside.db"
)

// Config holds runtime settings for the CLI, TUI and MCP server.
type Config struct {
	DBPath          string        `env:"COURTSIDE_DB_PATH"`
	LogLevel        string        `env:"COURTSIDE_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"COURTSIDE_LOG_FORMAT" envDefault:"console"`
	PlayerLimit     int           `env:"COURTSIDE_PLAYER_LIMIT" envDefault:"4"`
	LowRosterWindow time.Duration `env:"COURTSIDE_LOW_ROSTER_WINDOW" envDefault:"24h"`
}

// DefaultDatabasePath returns the XDG-compliant database location.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.DataHome, AppName, DatabaseFileName)
}

// Load reads an optional .env file from the working directory and then the
// process environment. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv parses configuration from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDatabasePath()
	}
	if cfg.PlayerLimit <= 0 {
		return nil, fmt.Errorf("COURTSIDE_PLAYER_LIMIT must be positive, got %d", cfg.PlayerLimit)
	}
	if cfg.LowRosterWindow < 0 {
		return nil, fmt.Errorf("COURTSIDE_LOW_ROSTER_WINDOW must not be negative, got %s", cfg.LowRosterWindow)
	}

	return cfg, nil
}

// WithDBPath returns a copy of cfg using path when it is set.
func (c Config) WithDBPath(path string) *Config {
	if path != "" {
		c.DBPath = path
	}
	return &c
}

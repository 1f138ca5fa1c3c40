// Package ingest provides the concrete request sources: CSV exports and a
// Postgres table, selected by configuration.
package ingest

import (
	"fmt"

	"github.com/gasgrid/lcv-dispatch/core/ingest"
)

// Config selects and parameterizes the request source.
type Config struct {
	// Backend selects the source type: "csv" or "postgres".
	Backend string `json:"backend"`
	// Path is the CSV file location (csv backend).
	Path string `json:"path"`
	// DSN is the Postgres connection string (postgres backend).
	DSN string `json:"dsn"`
	// Table is the Postgres table holding request records.
	Table string `json:"table"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "csv"
	}
	if c.Path == "" {
		c.Path = "data.csv"
	}
	if c.Table == "" {
		c.Table = "dispatch_requests"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	switch c.Backend {
	case "csv":
		if c.Path == "" {
			return fmt.Errorf("csv backend requires path")
		}
	case "postgres":
		if c.DSN == "" {
			return fmt.Errorf("postgres backend requires dsn")
		}
	default:
		return fmt.Errorf("unknown source backend %q", c.Backend)
	}
	return nil
}

// New builds the configured source.
func New(cfg Config) (ingest.Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case "csv":
		return NewCSVSource(cfg.Path), nil
	case "postgres":
		return NewPostgresSource(cfg.DSN, cfg.Table)
	}
	return nil, fmt.Errorf("unknown source backend %q", cfg.Backend)
}

// Package config provides centralized configuration for the service. It
// loads settings from environment variables with defaults, and validates
// everything on startup to fail fast on misconfiguration.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Sheet    SheetConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing the response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds database connection settings. The database is
// optional: with no URL configured the service serves from the in-memory
// result only.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of pooled connections (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections kept open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
}

// SheetConfig holds the published-sheet source and validation settings.
type SheetConfig struct {
	// URL is the published CSV URL of the spreadsheet (required)
	URL string `env:"SHEET_URL" required:"true"`

	// FetchTimeout is the HTTP timeout for fetching the sheet (default: 30s)
	FetchTimeout time.Duration `env:"SHEET_FETCH_TIMEOUT" default:"30s"`

	// RefreshInterval is how often the sheet is re-ingested (default: 15m)
	RefreshInterval time.Duration `env:"SHEET_REFRESH_INTERVAL" default:"15m"`

	// StrictMode aborts a load when a required field has no matching column
	StrictMode bool `env:"SHEET_STRICT_MODE" default:"false"`

	// LogMissingOptional warns about optional fields with no matching column
	LogMissingOptional bool `env:"SHEET_LOG_MISSING_OPTIONAL" default:"true"`

	// ValidateURLs checks link-field values parse as absolute URLs
	ValidateURLs bool `env:"SHEET_VALIDATE_URLS" default:"true"`

	// ValidateYears checks the year field parses as an in-range integer
	ValidateYears bool `env:"SHEET_VALIDATE_YEARS" default:"true"`

	// Debug enables per-diagnostic debug logging during loads
	Debug bool `env:"SHEET_DEBUG" default:"false"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

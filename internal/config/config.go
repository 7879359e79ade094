// Package config loads course planner settings from the environment.
// Every field has an env tag and most have a default; Validate reports all
// problems at once so a bad deployment fails on start-up, not mid-session.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Catalog  CatalogConfig
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// CatalogConfig holds catalog loading settings.
type CatalogConfig struct {
	// File is loaded by the list, show and serve commands when --file is not given
	File string `env:"CATALOG_FILE"`

	// MaxLineSize is the longest accepted line in bytes (default: 1MiB)
	MaxLineSize int `env:"CATALOG_MAX_LINE_SIZE" default:"1048576"`

	// History is how many load events the in-memory recorder keeps (default: 50)
	History int `env:"CATALOG_LOAD_HISTORY" default:"50"`
}

// ServerConfig holds settings for the read-only web browser.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" default:"127.0.0.1"`
	Port            int           `env:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	RequestTimeout  time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds the optional load-history database.
// When URL is empty, load events are kept in memory only.
type DatabaseConfig struct {
	URL            string        `env:"DATABASE_URL" envAlt:"DB_URL"`
	MaxConns       int           `env:"DB_MAX_CONNS" default:"4"`
	MinConns       int           `env:"DB_MIN_CONNS" default:"0"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" default:"5s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `env:"LOG_LEVEL" default:"warn"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// AuditEnabled reports whether load events go to Postgres.
func (c *DatabaseConfig) AuditEnabled() bool {
	return c.URL != ""
}

// Package config provides centralized configuration management for the
// application. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Import   ImportConfig
	Session  SessionConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// ImportConfig holds the matching engine policies applied to new sessions.
type ImportConfig struct {
	// AutoMapHeaders enables fuzzy header matching at session start (default: true)
	AutoMapHeaders bool `env:"IMPORT_AUTO_MAP_HEADERS" default:"true"`

	// AutoMapSelectValues enables auto-resolving enumerated sub-entries (default: true)
	AutoMapSelectValues bool `env:"IMPORT_AUTO_MAP_SELECT_VALUES" default:"true"`

	// AutoMapDistance is the maximum edit distance for an auto-match.
	// 0 means exact matches only (default: 2)
	AutoMapDistance int `env:"IMPORT_AUTO_MAP_DISTANCE" default:"2"`

	// SampleSize is how many leading rows seed enumerated sub-entries (default: 3)
	SampleSize int `env:"IMPORT_SAMPLE_SIZE" default:"3"`

	// AllowCustomFields enables synthesizing fields from unmatched headers (default: true)
	AllowCustomFields bool `env:"IMPORT_ALLOW_CUSTOM_FIELDS" default:"true"`

	// AllowInvalidSubmit permits forced submits with unmatched required
	// fields (default: true). Set false for a no-invalid-submit policy.
	AllowInvalidSubmit bool `env:"IMPORT_ALLOW_INVALID_SUBMIT" default:"true"`

	// MaxRows caps how many rows are read from an uploaded file (default: 100)
	MaxRows int `env:"IMPORT_MAX_ROWS" default:"100"`

	// MaxFileSize is the maximum allowed upload size in bytes (default: 10MB)
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"10485760"`

	// AutoMapMaxBytes disables auto-mapping (header and select-value) for
	// uploads larger than this, bounding matching cost on big files.
	// 0 means no limit (default: 5MB)
	AutoMapMaxBytes int64 `env:"IMPORT_AUTO_MAP_MAX_BYTES" default:"5242880"`
}

// SessionConfig holds in-memory session management settings.
type SessionConfig struct {
	// TTL is how long an idle session is kept before it is discarded (default: 30m)
	TTL time.Duration `env:"SESSION_TTL" default:"30m"`

	// MaxActive is the maximum number of concurrent sessions (default: 100)
	MaxActive int `env:"SESSION_MAX_ACTIVE" default:"100"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// SecurityConfig holds security settings.
type SecurityConfig struct {
	// RequireAPIKey enables API key authentication (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of valid API keys
	APIKeys []string `env:"API_KEYS"`

	// TrustedProxies is a comma-separated list of CIDRs whose
	// X-Real-IP / X-Forwarded-For headers are trusted
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
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

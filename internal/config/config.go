// Package config provides centralized configuration management for the admin
// server. It loads configuration from environment variables with sensible
// defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Remote    RemoteConfig
	Rate      RateLimitConfig
	Security  SecurityConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
	Seed      SeedConfig
	Audit     AuditConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`

	// Environment names the deployment in telemetry (default: development)
	Environment string `env:"APP_ENV" default:"development"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Empty keeps every record in
	// memory. Supports both DATABASE_URL and DB_URL.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// Migrate applies pending schema migrations on startup (default: true)
	Migrate bool `env:"DB_MIGRATE" default:"true"`
}

// RemoteConfig holds settings of the public IPO listing API.
type RemoteConfig struct {
	BaseURL string `env:"IPO_API_BASE_URL" default:"https://api.ipogmptracker.com/api"`

	// Timeout bounds one listing request (default: 10s)
	Timeout time.Duration `env:"IPO_API_TIMEOUT" default:"10s"`

	// CacheTTL is how long a fetched page is reused; 0 disables (default: 30s)
	CacheTTL time.Duration `env:"IPO_API_CACHE_TTL" default:"30s"`

	// PageSize is the limit used when a request names none (default: 10)
	PageSize int `env:"IPO_API_PAGE_SIZE" default:"10"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the sustained rate per IP (default: 120)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`

	// Burst is the number of requests allowed at once (default: 30)
	Burst int `env:"RATE_LIMIT_BURST" default:"30"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// TelemetryConfig holds OpenTelemetry metric export settings.
type TelemetryConfig struct {
	Enabled  bool          `env:"OTEL_ENABLED" default:"false"`
	Endpoint string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"localhost:4318"`
	Insecure bool          `env:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
	Interval time.Duration `env:"OTEL_METRIC_EXPORT_INTERVAL" default:"30s"`
}

// SeedConfig controls loading of the bundled sample data.
type SeedConfig struct {
	// Enabled fills empty resources with sample records on startup (default: true)
	Enabled bool `env:"SEED_ENABLED" default:"true"`
}

// AuditConfig holds audit log retention settings.
type AuditConfig struct {
	// RetentionDays is days to keep audit entries (default: 90)
	RetentionDays int `env:"AUDIT_RETENTION_DAYS" default:"90"`

	// CheckInterval is how often to prune the audit log (default: 24h)
	CheckInterval time.Duration `env:"AUDIT_CHECK_INTERVAL" default:"24h"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// InMemory reports whether records are kept in process memory.
func (c *DatabaseConfig) InMemory() bool {
	return c.URL == ""
}

// Package config provides centralized configuration management for the
// archive server and CLI. It loads configuration from environment variables
// with defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Source   SourceConfig
	Cache    CacheConfig
	Database DatabaseConfig
	Browser  BrowserConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig

	// SchemaFile is an optional YAML file overriding the column layout.
	SchemaFile string `env:"SCHEMA_FILE"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 20s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"20s"`
}

// SourceConfig describes where the archive CSV is read from.
type SourceConfig struct {
	// Dir is the local directory served when URL is empty (default: public)
	Dir string `env:"SOURCE_DIR" default:"public"`

	// URL is the base URL of a remote source. When set it replaces Dir.
	URL string `env:"SOURCE_URL"`

	// Path is the resource path of the CSV (default: /exoplanet-data.csv)
	Path string `env:"SOURCE_PATH" default:"/exoplanet-data.csv"`

	// Timeout bounds a single remote fetch (default: 10s)
	Timeout time.Duration `env:"SOURCE_TIMEOUT" default:"10s"`

	// MaxBytes caps the size of a fetched body (default: 64MB)
	MaxBytes int64 `env:"SOURCE_MAX_BYTES" default:"67108864"`

	// MaxConcurrent is the maximum number of fetches in flight (default: 4)
	MaxConcurrent int `env:"SOURCE_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long a fetch waits for a slot (default: 10s)
	MaxWaitTime time.Duration `env:"SOURCE_MAX_WAIT_TIME" default:"10s"`

	// RefreshInterval is how often the source is re-fetched in the
	// background; 0 disables the scheduler (default: 6h)
	RefreshInterval time.Duration `env:"SOURCE_REFRESH_INTERVAL" default:"6h"`

	// Watch invalidates the cache when the local CSV changes (default: true)
	Watch bool `env:"SOURCE_WATCH" default:"true"`
}

// Remote reports whether the source is fetched over HTTP.
func (c *SourceConfig) Remote() bool {
	return c.URL != ""
}

// CacheConfig holds source cache settings.
type CacheConfig struct {
	// Enabled memoizes fetched bodies; false re-fetches per view (default: true)
	Enabled bool `env:"CACHE_ENABLED" default:"true"`

	// TTL is how long a body stays fresh; 0 never expires (default: 5m)
	TTL time.Duration `env:"CACHE_TTL" default:"5m"`
}

// DatabaseConfig holds snapshot store settings. Snapshots are disabled when
// URL is empty.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 5)
	MaxConns int `env:"DB_MAX_CONNS" default:"5"`

	// MinConns is the minimum number of connections to keep open (default: 0)
	MinConns int `env:"DB_MIN_CONNS" default:"0"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// SnapshotKeep is the number of snapshots kept per source (default: 10)
	SnapshotKeep int `env:"SNAPSHOT_KEEP" default:"10"`

	// SnapshotInterval is the minimum time between snapshots taken from
	// ordinary loads (default: 1h)
	SnapshotInterval time.Duration `env:"SNAPSHOT_INTERVAL" default:"1h"`
}

// Enabled reports whether a snapshot database is configured.
func (c *DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// BrowserConfig tunes the standard views.
type BrowserConfig struct {
	// PageSize is the number of rows per browser page (default: 20)
	PageSize int `env:"BROWSER_PAGE_SIZE" default:"20"`

	// LineCap is the number of lines after the header the browser reads (default: 1000)
	LineCap int `env:"BROWSER_LINE_CAP" default:"1000"`

	// RecentLimit is the number of recent discoveries shown (default: 10)
	RecentLimit int `env:"RECENT_LIMIT" default:"10"`
}

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 120)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`

	// RefreshLimit is requests per minute for the refresh endpoint (default: 6)
	RefreshLimit int `env:"RATE_LIMIT_REFRESH" default:"6"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey guards the refresh endpoint (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted X-API-Key values
	APIKeys []string `env:"API_KEYS"`
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
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

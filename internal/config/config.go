// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Source kinds accepted by SOURCE_KIND.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceS3       = "s3"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Source   SourceConfig
	Database DatabaseConfig
	S3       S3Config
	Catalog  CatalogConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// SourceConfig selects where the parameter tables are read from.
type SourceConfig struct {
	// Kind is embedded, file, postgres or s3 (default: embedded)
	Kind string `env:"SOURCE_KIND" default:"embedded"`

	// CutPath is the cut table file for the file source
	CutPath string `env:"SOURCE_CUT_PATH"`

	// PerforationPath is the perforation table file for the file source
	PerforationPath string `env:"SOURCE_PERFORATION_PATH"`

	// Encoding is the character set of the tables (default: utf-8)
	Encoding string `env:"SOURCE_ENCODING" default:"utf-8"`

	// RefreshInterval re-reads the sources periodically; 0 loads once (default: 0s)
	RefreshInterval time.Duration `env:"SOURCE_REFRESH_INTERVAL" default:"0s"`

	// Timeout bounds a single refresh of all sources (default: 30s)
	Timeout time.Duration `env:"SOURCE_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds settings for the PostgreSQL source.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string, required for the postgres source
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 0)
	MinConns int `env:"DB_MIN_CONNS" default:"0"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	// CutQuery selects the cut table columns in schema order
	CutQuery string `env:"DB_CUT_QUERY" default:"SELECT * FROM laser_cut_params ORDER BY id"`

	// PerforationQuery selects the perforation table columns in schema order
	PerforationQuery string `env:"DB_PERFORATION_QUERY" default:"SELECT * FROM laser_perforation_params ORDER BY id"`
}

// S3Config holds settings for the S3 source. MinIO works with an endpoint
// and path-style addressing.
type S3Config struct {
	// Bucket holds the table objects, required for the s3 source
	Bucket string `env:"S3_BUCKET"`

	// CutKey is the object key of the cut table
	CutKey string `env:"S3_CUT_KEY" default:"laser_cut_params.csv"`

	// PerforationKey is the object key of the perforation table
	PerforationKey string `env:"S3_PERFORATION_KEY" default:"laser_perforation_params.csv"`

	// Region is the bucket region (default: us-east-1)
	Region string `env:"S3_REGION" envAlt:"AWS_REGION" default:"us-east-1"`

	// Endpoint overrides the service endpoint, e.g. http://localhost:9000
	Endpoint string `env:"S3_ENDPOINT"`

	// AccessKeyID and SecretAccessKey set static credentials; when empty the
	// default AWS credential chain is used
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`

	// UsePathStyle enables path-style addressing (default: false)
	UsePathStyle bool `env:"S3_USE_PATH_STYLE" default:"false"`
}

// CatalogConfig overrides the bundled dictionaries and equipment list.
type CatalogConfig struct {
	// TermsFile replaces the embedded term dictionaries
	TermsFile string `env:"TERMS_FILE"`

	// EquipmentFile replaces the embedded robot and cobot list
	EquipmentFile string `env:"EQUIPMENT_FILE"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// RefreshLimit is requests per minute for the refresh endpoint (default: 6)
	RefreshLimit int `env:"RATE_LIMIT_REFRESH" default:"6"`

	// ExemptIPs is a comma-separated list of client IPs that are never limited
	ExemptIPs []string `env:"RATE_LIMIT_EXEMPT_IPS"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of proxy CIDRs whose
	// X-Real-IP and X-Forwarded-For headers are honoured
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// RefreshAPIKeys protects POST /api/refresh; empty leaves it open
	RefreshAPIKeys []string `env:"REFRESH_API_KEYS"`
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
	return c.Host + ":" + strconv.Itoa(c.Port)
}

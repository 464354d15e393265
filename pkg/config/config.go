// Package config provides configuration loading, validation, and hot reload
// for the Hermes chat relay.
package config

import "time"

// Config is the root configuration structure.
type Config struct {
	// Server contains HTTP server settings
	Server ServerConfig `yaml:"server"`

	// Provider contains the generative backend settings
	Provider ProviderConfig `yaml:"provider"`

	// RateLimit contains per-client rate limiting settings
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// Telemetry contains logging and metrics settings
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// ListenAddress is the address to bind (e.g., ":8000")
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the request
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing the response
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum duration to keep idle connections open
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes is the maximum size of request headers
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// StaticDir is the directory holding the static frontend assets
	StaticDir string `yaml:"static_dir"`

	// CORS contains cross-origin resource sharing settings
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains CORS settings.
type CORSConfig struct {
	// Enabled controls whether CORS headers are emitted
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins is the list of allowed origins ("*" allows all)
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods is the list of allowed HTTP methods
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders is the list of allowed request headers
	AllowedHeaders []string `yaml:"allowed_headers"`

	// MaxAge is the preflight cache duration in seconds
	MaxAge int `yaml:"max_age"`
}

// ProviderConfig contains settings for the generative backend.
type ProviderConfig struct {
	// Name is the provider identifier used in logs and errors
	Name string `yaml:"name"`

	// BaseURL is the API endpoint base URL
	BaseURL string `yaml:"base_url"`

	// APIKey is the authentication key. Absence is a warning at startup
	// and a server configuration error at call time, not a fatal error.
	APIKey string `yaml:"api_key"`

	// Model is the model identifier used for text generation
	Model string `yaml:"model"`

	// Timeout is the per-request timeout for backend calls
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is the maximum number of retry attempts for transient errors
	MaxRetries int `yaml:"max_retries"`

	// MaxIdleConns is the maximum number of idle connections in the pool
	MaxIdleConns int `yaml:"max_idle_conns"`

	// MaxIdleConnsPerHost is the maximum idle connections per host
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host"`

	// IdleConnTimeout is how long an idle connection remains in the pool
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

// RateLimitConfig contains per-client rate limiting settings.
type RateLimitConfig struct {
	// Window is the fixed-window duration
	Window time.Duration `yaml:"window"`

	// MaxRequests is the number of requests admitted per window per client
	MaxRequests int `yaml:"max_requests"`

	// SweepSchedule is the cron expression for evicting stale client entries
	SweepSchedule string `yaml:"sweep_schedule"`
}

// TelemetryConfig contains observability settings.
type TelemetryConfig struct {
	// Logging contains structured logging settings
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics settings
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `yaml:"level"`

	// Format is the output format (json, text)
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is exposed
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the metrics endpoint
	Path string `yaml:"path"`

	// Namespace is the Prometheus metric namespace
	Namespace string `yaml:"namespace"`
}

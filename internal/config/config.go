// Package config provides configuration management for the OpenAlex MCP server.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the OpenAlex MCP server.
type Config struct {
	// OpenAlex contains upstream API client settings.
	OpenAlex OpenAlexConfig `mapstructure:"openalex"`
	// Download contains PDF download settings.
	Download DownloadConfig `mapstructure:"download"`
	// Logging contains structured logging settings.
	Logging LoggingConfig `mapstructure:"logging"`
	// Metrics contains Prometheus metrics exposure settings.
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// OpenAlexConfig holds upstream API client configuration.
type OpenAlexConfig struct {
	// BaseURL is the OpenAlex API base URL.
	BaseURL string `mapstructure:"base_url"`
	// Email is the contact email for the polite pool. Optional; when empty
	// requests are made without a mailto parameter.
	Email string `mapstructure:"email"`
	// Timeout is the per-request timeout.
	Timeout time.Duration `mapstructure:"timeout"`
	// MaxConcurrent is the maximum number of in-flight upstream requests.
	MaxConcurrent int `mapstructure:"max_concurrent"`
	// RateLimit is the maximum requests per second to the upstream API.
	RateLimit float64 `mapstructure:"rate_limit"`
	// BurstSize is the maximum burst of requests allowed.
	BurstSize int `mapstructure:"burst_size"`
	// DefaultPageSize is the page size used when a caller does not request one.
	DefaultPageSize int `mapstructure:"default_page_size"`
	// MaxPageSize is the hard cap on per_page; requests above it are clamped.
	MaxPageSize int `mapstructure:"max_page_size"`
	// DailyLimit is the advisory daily request budget. Crossing it logs a
	// warning; requests are never blocked.
	DailyLimit int `mapstructure:"daily_limit"`
	// LogRequests enables debug logging of every outbound request URL.
	LogRequests bool `mapstructure:"log_requests"`
}

// DownloadConfig holds PDF download configuration.
type DownloadConfig struct {
	// Timeout is the timeout for PDF byte fetches.
	Timeout time.Duration `mapstructure:"timeout"`
	// MaxSizeBytes is the maximum PDF size accepted.
	MaxSizeBytes int64 `mapstructure:"max_size_bytes"`
	// OutputDir is where PDFs land when a tool call does not name a
	// directory.
	OutputDir string `mapstructure:"output_dir"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the log level (trace, debug, info, warn, error, fatal, panic).
	Level string `mapstructure:"level"`
	// Format is the log format (json, console).
	Format string `mapstructure:"format"`
	// Output is the log output destination (stdout, stderr).
	// Defaults to stderr because stdout carries the MCP JSON-RPC stream.
	Output string `mapstructure:"output"`
	// AddSource adds source file and line to log output.
	AddSource bool `mapstructure:"add_source"`
	// TimeFormat is the timestamp format.
	TimeFormat string `mapstructure:"time_format"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	// Enabled enables the metrics HTTP server.
	Enabled bool `mapstructure:"enabled"`
	// Addr is the listen address for the metrics server.
	Addr string `mapstructure:"addr"`
	// Path is the HTTP path for the metrics endpoint.
	Path string `mapstructure:"path"`
}

// UserAgent returns the User-Agent string for upstream requests.
// Including the contact email follows OpenAlex guidance for the polite pool.
func (c *OpenAlexConfig) UserAgent() string {
	base := "openalex-mcp/1.0"
	if c.Email != "" {
		return fmt.Sprintf("%s (mailto:%s)", base, c.Email)
	}
	return base
}

// PolitePool reports whether requests qualify for the polite pool.
func (c *OpenAlexConfig) PolitePool() bool {
	return c.Email != ""
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("OPENALEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/openalex-mcp")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use env vars and defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Upstream API defaults
	v.SetDefault("openalex.base_url", "https://api.openalex.org")
	v.SetDefault("openalex.email", "")
	v.SetDefault("openalex.timeout", "30s")
	v.SetDefault("openalex.max_concurrent", 10)
	v.SetDefault("openalex.rate_limit", 10.0)
	v.SetDefault("openalex.burst_size", 10)
	v.SetDefault("openalex.default_page_size", 25)
	v.SetDefault("openalex.max_page_size", 200)
	v.SetDefault("openalex.daily_limit", 100000)
	v.SetDefault("openalex.log_requests", false)

	// Download defaults
	v.SetDefault("download.timeout", "60s")
	v.SetDefault("download.max_size_bytes", 100*1024*1024)
	v.SetDefault("download.output_dir", ".")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	// Metrics defaults
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.addr", "localhost:9091")
	v.SetDefault("metrics.path", "/metrics")
}

// Validate validates the configuration. A validation failure is fatal to
// process startup; it is never surfaced through a tool result.
func (c *Config) Validate() error {
	if c.OpenAlex.BaseURL == "" {
		return fmt.Errorf("openalex base_url is required")
	}
	if c.OpenAlex.Timeout <= 0 {
		return fmt.Errorf("openalex timeout must be positive")
	}
	if c.OpenAlex.MaxConcurrent <= 0 {
		return fmt.Errorf("openalex max_concurrent must be positive")
	}
	if c.OpenAlex.RateLimit <= 0 {
		return fmt.Errorf("openalex rate_limit must be positive")
	}
	if c.OpenAlex.BurstSize <= 0 {
		return fmt.Errorf("openalex burst_size must be positive")
	}
	if c.OpenAlex.MaxPageSize <= 0 || c.OpenAlex.MaxPageSize > 200 {
		return fmt.Errorf("openalex max_page_size must be between 1 and 200")
	}
	if c.OpenAlex.DefaultPageSize <= 0 || c.OpenAlex.DefaultPageSize > c.OpenAlex.MaxPageSize {
		return fmt.Errorf("openalex default_page_size must be between 1 and %d", c.OpenAlex.MaxPageSize)
	}
	if c.OpenAlex.DailyLimit <= 0 {
		return fmt.Errorf("openalex daily_limit must be positive")
	}
	if c.Download.Timeout <= 0 {
		return fmt.Errorf("download timeout must be positive")
	}
	if c.Download.MaxSizeBytes <= 0 {
		return fmt.Errorf("download max_size_bytes must be positive")
	}

	validLogLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics addr is required when metrics are enabled")
	}

	return nil
}

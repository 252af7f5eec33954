package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads defaults without a config file", func(t *testing.T) {
		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "https://api.openalex.org", cfg.OpenAlex.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.OpenAlex.Timeout)
		assert.Equal(t, 10, cfg.OpenAlex.MaxConcurrent)
		assert.Equal(t, 10.0, cfg.OpenAlex.RateLimit)
		assert.Equal(t, 25, cfg.OpenAlex.DefaultPageSize)
		assert.Equal(t, 200, cfg.OpenAlex.MaxPageSize)
		assert.Equal(t, int64(100*1024*1024), cfg.Download.MaxSizeBytes)
		assert.Equal(t, ".", cfg.Download.OutputDir)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "stderr", cfg.Logging.Output)
		assert.False(t, cfg.Metrics.Enabled)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		t.Setenv("OPENALEX_OPENALEX_EMAIL", "research@example.org")
		t.Setenv("OPENALEX_OPENALEX_MAX_CONCURRENT", "5")
		t.Setenv("OPENALEX_LOGGING_LEVEL", "debug")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "research@example.org", cfg.OpenAlex.Email)
		assert.Equal(t, 5, cfg.OpenAlex.MaxConcurrent)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("invalid environment value fails validation", func(t *testing.T) {
		t.Setenv("OPENALEX_OPENALEX_MAX_CONCURRENT", "0")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_concurrent")
	})
}

func validConfig() *Config {
	return &Config{
		OpenAlex: OpenAlexConfig{
			BaseURL:         "https://api.openalex.org",
			Timeout:         30 * time.Second,
			MaxConcurrent:   10,
			RateLimit:       10.0,
			BurstSize:       10,
			DefaultPageSize: 25,
			MaxPageSize:     200,
			DailyLimit:      100000,
		},
		Download: DownloadConfig{
			Timeout:      60 * time.Second,
			MaxSizeBytes: 100 * 1024 * 1024,
			OutputDir:    ".",
		},
		Logging: LoggingConfig{Level: "info", Format: "json", Output: "stderr"},
	}
}

func TestValidate(t *testing.T) {
	t.Run("accepts a valid config", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.OpenAlex.BaseURL = "" },
			wantErr: "base_url",
		},
		{
			name:    "non-positive timeout",
			mutate:  func(c *Config) { c.OpenAlex.Timeout = 0 },
			wantErr: "timeout",
		},
		{
			name:    "non-positive max_concurrent",
			mutate:  func(c *Config) { c.OpenAlex.MaxConcurrent = -1 },
			wantErr: "max_concurrent",
		},
		{
			name:    "non-positive rate limit",
			mutate:  func(c *Config) { c.OpenAlex.RateLimit = 0 },
			wantErr: "rate_limit",
		},
		{
			name:    "max page size above the API cap",
			mutate:  func(c *Config) { c.OpenAlex.MaxPageSize = 500 },
			wantErr: "max_page_size",
		},
		{
			name:    "default page size above the maximum",
			mutate:  func(c *Config) { c.OpenAlex.DefaultPageSize = 300 },
			wantErr: "default_page_size",
		},
		{
			name:    "non-positive download size cap",
			mutate:  func(c *Config) { c.Download.MaxSizeBytes = 0 },
			wantErr: "max_size_bytes",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "invalid log level",
		},
		{
			name: "metrics enabled without an address",
			mutate: func(c *Config) {
				c.Metrics.Enabled = true
				c.Metrics.Addr = ""
			},
			wantErr: "metrics addr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUserAgent(t *testing.T) {
	t.Run("includes the mailto contact when configured", func(t *testing.T) {
		cfg := OpenAlexConfig{Email: "research@example.org"}

		assert.Equal(t, "openalex-mcp/1.0 (mailto:research@example.org)", cfg.UserAgent())
		assert.True(t, cfg.PolitePool())
	})

	t.Run("plain agent string without an email", func(t *testing.T) {
		cfg := OpenAlexConfig{}

		assert.Equal(t, "openalex-mcp/1.0", cfg.UserAgent())
		assert.False(t, cfg.PolitePool())
	})
}

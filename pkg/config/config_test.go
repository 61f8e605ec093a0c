package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 3, cfg.HTTP.MaxRetries)
	assert.Equal(t, 50, cfg.Scrape.N)
	assert.Equal(t, 100, cfg.Scrape.ChunkSize)
	assert.Equal(t, 5, cfg.Scrape.Concurrency)
	assert.Equal(t, FormatConsole, cfg.Output.Format)
	assert.Equal(t, 300, cfg.Output.MaxWidth)
	assert.Equal(t, 300, cfg.Output.MaxHeight)
	assert.Zero(t, cfg.RateLimit.RequestsPerSecond)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
http:
  timeout: 30s
  proxy: http://proxy.local:8080
  max_retries: 5
rate_limit:
  requests_per_second: 2.5
scrape:
  n: 25
  chunk_size: 10
  concurrency: 8
output:
  format: deck
  directory: /tmp/decks
  max_width: 400
  max_height: 250
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "http://proxy.local:8080", cfg.HTTP.Proxy)
	assert.Equal(t, 5, cfg.HTTP.MaxRetries)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 25, cfg.Scrape.N)
	assert.Equal(t, 10, cfg.Scrape.ChunkSize)
	assert.Equal(t, 8, cfg.Scrape.Concurrency)
	assert.Equal(t, "deck", cfg.Output.Format)
	assert.Equal(t, "/tmp/decks", cfg.Output.Directory)
	assert.Equal(t, 400, cfg.Output.MaxWidth)
	assert.Equal(t, 250, cfg.Output.MaxHeight)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("THSCRAPER_PROXY", "http://env-proxy:3128")
	t.Setenv("THSCRAPER_TIMEOUT_SECONDS", "20")
	t.Setenv("THSCRAPER_REQUESTS_PER_SECOND", "1.5")
	t.Setenv("THSCRAPER_LOG_LEVEL", "warn")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "http://env-proxy:3128", cfg.HTTP.Proxy)
	assert.Equal(t, 20*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 1.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.HTTP.Timeout = 0 },
			wantErr: "timeout",
		},
		{
			name:    "negative retries",
			mutate:  func(c *Config) { c.HTTP.MaxRetries = -1 },
			wantErr: "retries",
		},
		{
			name:    "negative rate",
			mutate:  func(c *Config) { c.RateLimit.RequestsPerSecond = -2 },
			wantErr: "requests per second",
		},
		{
			name:    "zero chunk size",
			mutate:  func(c *Config) { c.Scrape.ChunkSize = 0 },
			wantErr: "scrape defaults",
		},
		{
			name:    "zero image bound",
			mutate:  func(c *Config) { c.Output.MaxHeight = 0 },
			wantErr: "image bound",
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Output.Format = "xml" },
			wantErr: "output format",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "chatty" },
			wantErr: "log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

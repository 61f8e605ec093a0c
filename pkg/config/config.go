package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the TrendHunter scraper
type Config struct {
	// HTTP client settings
	HTTP HTTPConfig `yaml:"http" json:"http"`

	// Rate limiting configuration
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Scrape defaults (overridable per subcommand)
	Scrape ScrapeConfig `yaml:"scrape" json:"scrape"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// HTTPConfig holds HTTP client configuration
type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`
	Proxy      string        `yaml:"proxy" json:"proxy"`
	MaxRetries int           `yaml:"max_retries" json:"max_retries"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent"`
}

// RateLimitConfig holds rate limiting configuration. RequestsPerSecond of 0
// disables the gate entirely.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
}

// ScrapeConfig holds default query parameters
type ScrapeConfig struct {
	N           int `yaml:"n" json:"n"`
	ChunkSize   int `yaml:"chunk_size" json:"chunk_size"`
	Concurrency int `yaml:"concurrency" json:"concurrency"`
}

// OutputConfig holds output rendering configuration
type OutputConfig struct {
	Format    string `yaml:"format" json:"format"`
	Directory string `yaml:"directory" json:"directory"`
	MaxWidth  int    `yaml:"max_width" json:"max_width"`
	MaxHeight int    `yaml:"max_height" json:"max_height"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// Output formats accepted by OutputConfig.Format.
const (
	FormatConsole = "console"
	FormatDeck    = "deck"
)

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:    10 * time.Second,
			MaxRetries: 3,
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
				"(KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 0, // unlimited
		},
		Scrape: ScrapeConfig{
			N:           50,
			ChunkSize:   100,
			Concurrency: 5,
		},
		Output: OutputConfig{
			Format:    FormatConsole,
			Directory: ".",
			MaxWidth:  300,
			MaxHeight: 300,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// Load builds the effective configuration: defaults, then the config file
// (explicit path or a standard location), then environment overrides.
func Load(path string) (*Config, error) {
	// A .env file is optional
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if err := cfg.LoadFromFile(path); err != nil {
		return nil, err
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	// Check in order of precedence
	locations := []string{
		".thscraper.yaml",
		".thscraper.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "thscraper", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "thscraper", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".thscraper.yaml"),
		filepath.Join(os.Getenv("HOME"), ".thscraper.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if proxy := os.Getenv("THSCRAPER_PROXY"); proxy != "" {
		c.HTTP.Proxy = proxy
	}
	if userAgent := os.Getenv("THSCRAPER_USER_AGENT"); userAgent != "" {
		c.HTTP.UserAgent = userAgent
	}
	if timeout := os.Getenv("THSCRAPER_TIMEOUT_SECONDS"); timeout != "" {
		if val, err := strconv.Atoi(timeout); err == nil && val > 0 {
			c.HTTP.Timeout = time.Duration(val) * time.Second
		}
	}
	if retries := os.Getenv("THSCRAPER_MAX_RETRIES"); retries != "" {
		if val, err := strconv.Atoi(retries); err == nil && val >= 0 {
			c.HTTP.MaxRetries = val
		}
	}
	if rps := os.Getenv("THSCRAPER_REQUESTS_PER_SECOND"); rps != "" {
		if val, err := strconv.ParseFloat(rps, 64); err == nil && val >= 0 {
			c.RateLimit.RequestsPerSecond = val
		}
	}
	if dir := os.Getenv("THSCRAPER_OUTPUT_DIR"); dir != "" {
		c.Output.Directory = dir
	}
	if level := os.Getenv("THSCRAPER_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %v", c.HTTP.Timeout)
	}
	if c.HTTP.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative, got %d", c.HTTP.MaxRetries)
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second cannot be negative, got %f", c.RateLimit.RequestsPerSecond)
	}
	if c.Scrape.N <= 0 || c.Scrape.ChunkSize <= 0 || c.Scrape.Concurrency <= 0 {
		return fmt.Errorf("scrape defaults must be positive: n=%d chunk_size=%d concurrency=%d",
			c.Scrape.N, c.Scrape.ChunkSize, c.Scrape.Concurrency)
	}
	if c.Output.MaxWidth <= 0 || c.Output.MaxHeight <= 0 {
		return fmt.Errorf("image bound must be positive: %dx%d", c.Output.MaxWidth, c.Output.MaxHeight)
	}

	switch strings.ToLower(c.Output.Format) {
	case FormatConsole, FormatDeck:
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}

	return nil
}

// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Stocks  StocksConfig  `mapstructure:"stocks"`
	Yahoo   YahooConfig   `mapstructure:"yahoo"`
	Refresh RefreshConfig `mapstructure:"refresh"`
	Storage StorageConfig `mapstructure:"storage"`
	Display DisplayConfig `mapstructure:"display"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StocksConfig holds the tracked-symbol configuration.
type StocksConfig struct {
	// Tickers is a comma-separated list of exchange-qualified symbols,
	// e.g. "SPOT, VWRL.L, VUSA.L". Order is display order.
	Tickers string `mapstructure:"tickers"`
}

// YahooConfig holds quote provider configuration.
type YahooConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RefreshConfig holds refresh loop configuration.
type RefreshConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	RetryDelay  time.Duration `mapstructure:"retry_delay"`
	Debounce    time.Duration `mapstructure:"debounce"`
}

// StorageConfig holds persistence configuration.
type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// DisplayConfig holds menu rendering configuration.
type DisplayConfig struct {
	Title string `mapstructure:"title"`
	// Output is the file the rendered menu is written to; empty means stdout.
	Output string `mapstructure:"output"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	v.SetEnvPrefix("STOCKBAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("stocks.tickers", "SPOT, VWRL.L, VUSA.L")

	v.SetDefault("yahoo.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("yahoo.timeout", "10s")

	v.SetDefault("refresh.interval", "5s")
	v.SetDefault("refresh.max_attempts", 5)
	v.SetDefault("refresh.retry_delay", "1s")
	v.SetDefault("refresh.debounce", "750ms")

	v.SetDefault("storage.db_path", "")

	v.SetDefault("display.title", "Stock Prices")
	v.SetDefault("display.output", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid.
func (c *Config) Validate() error {
	if len(c.TrackedSymbols()) == 0 {
		return fmt.Errorf("stocks.tickers must contain at least one symbol")
	}
	if c.Yahoo.BaseURL == "" {
		return fmt.Errorf("yahoo.base_url is required")
	}
	if c.Yahoo.Timeout <= 0 {
		return fmt.Errorf("yahoo.timeout must be positive")
	}
	if c.Refresh.Interval < time.Second {
		return fmt.Errorf("refresh.interval must be at least 1 second")
	}
	if c.Refresh.MaxAttempts < 1 {
		return fmt.Errorf("refresh.max_attempts must be at least 1")
	}
	if c.Refresh.RetryDelay < 0 {
		return fmt.Errorf("refresh.retry_delay must not be negative")
	}
	if c.Refresh.Debounce < 0 {
		return fmt.Errorf("refresh.debounce must not be negative")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}
	return nil
}

// TrackedSymbols parses the configured ticker string into an ordered symbol
// list. Entries are trimmed of surrounding whitespace; empties are dropped,
// duplicates and symbol syntax are left alone.
func (c *Config) TrackedSymbols() []string {
	var symbols []string
	for _, entry := range strings.Split(c.Stocks.Tickers, ",") {
		if s := strings.TrimSpace(entry); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}

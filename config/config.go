// Package config loads the sbk configuration: a TOML file, a .env file and
// SBK_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// FileName is the name of the configuration file.
const FileName = "stockbook.toml"

// Config holds all configuration for sbk.
type Config struct {
	LedgerFile     string      `toml:"ledger_file"`
	Portfolio      string      `toml:"portfolio"` // default portfolio, all portfolios when empty.
	Currency       string      `toml:"currency"`  // display currency.
	CombineBrokers bool        `toml:"combine_brokers"`
	LogLevel       string      `toml:"log_level"`
	PricesFile     string      `toml:"prices_file"` // manual price overrides.
	Quote          QuoteConfig `toml:"quote"`
}

// QuoteConfig holds the web quote source configuration.
type QuoteConfig struct {
	URL      string `toml:"url"`  // with a "{ticker}" placeholder.
	Path     string `toml:"path"` // JSONPath of the price in the response.
	Timeout  string `toml:"timeout"`
	CacheDir string `toml:"cache_dir"`
}

// Enabled reports whether a quote source is configured.
func (c *QuoteConfig) Enabled() bool { return c.URL != "" }

// GetTimeout parses and returns the timeout duration
func (c *QuoteConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		LedgerFile: "transactions.jsonl",
		Currency:   "USD",
		LogLevel:   "warn",
		PricesFile: "prices.json",
		Quote: QuoteConfig{
			Path:    "$.price",
			Timeout: "10s",
		},
	}
}

// DefaultPaths returns the configuration files looked up by default, in
// increasing order of precedence: the user configuration directory, then
// the working directory.
func DefaultPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "stockbook", FileName))
	}
	return append(paths, FileName)
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones, missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadEnv loads .env files into the environment, without overriding
// variables that are already set. Missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) error {
	if v := os.Getenv("SBK_LEDGER_FILE"); v != "" {
		config.LedgerFile = v
	}
	if v := os.Getenv("SBK_PORTFOLIO"); v != "" {
		config.Portfolio = v
	}
	if v := os.Getenv("SBK_CURRENCY"); v != "" {
		config.Currency = v
	}
	if v := os.Getenv("SBK_COMBINE_BROKERS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SBK_COMBINE_BROKERS %q: %w", v, err)
		}
		config.CombineBrokers = b
	}
	if v := os.Getenv("SBK_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv("SBK_PRICES_FILE"); v != "" {
		config.PricesFile = v
	}
	if v := os.Getenv("SBK_QUOTE_URL"); v != "" {
		config.Quote.URL = v
	}
	if v := os.Getenv("SBK_QUOTE_PATH"); v != "" {
		config.Quote.Path = v
	}
	if v := os.Getenv("SBK_QUOTE_TIMEOUT"); v != "" {
		config.Quote.Timeout = v
	}
	return nil
}

// Validate checks the configuration values. The currency is upper-cased.
func (c *Config) Validate() error {
	var errs []error
	if c.LedgerFile == "" {
		errs = append(errs, errors.New("ledger_file must not be empty"))
	}
	c.Currency = strings.ToUpper(c.Currency)
	if len(c.Currency) != 3 {
		errs = append(errs, fmt.Errorf("currency %q must be a 3 letter ISO code", c.Currency))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error", "disabled":
	default:
		errs = append(errs, fmt.Errorf("log_level %q must be debug, info, warn, error or disabled", c.LogLevel))
	}
	if c.Quote.Enabled() {
		if !strings.Contains(c.Quote.URL, "{ticker}") {
			errs = append(errs, fmt.Errorf("quote url %q must contain a {ticker} placeholder", c.Quote.URL))
		}
		if c.Quote.Path == "" {
			errs = append(errs, errors.New("quote path must not be empty"))
		}
		if _, err := time.ParseDuration(c.Quote.Timeout); c.Quote.Timeout != "" && err != nil {
			errs = append(errs, fmt.Errorf("invalid quote timeout %q: %w", c.Quote.Timeout, err))
		}
	}
	return errors.Join(errs...)
}

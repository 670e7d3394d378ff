package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/raisineat/internal/logging"
)

const (
	DefaultBaseURL = "https://rc-code-challenge.netlify.app/api/v1"
	dbFileName     = "raisineat.db"
	deviceKeyName  = "device.key"
)

// Config holds runtime settings for the RaisinEat client.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL"`
	RequestTimeout     time.Duration `envconfig:"REQUEST_TIMEOUT"`
	DataDir            string        `envconfig:"DATA_DIR"`
	KeychainPassphrase string        `envconfig:"KEYCHAIN_PASSPHRASE"`
	StartupPolicy      string        `envconfig:"STARTUP_POLICY"`
	CatalogCacheTTL    time.Duration `envconfig:"CATALOG_CACHE_TTL"`
	RetryAttempts      int           `envconfig:"RETRY_ATTEMPTS"`
	LogLevel           string        `envconfig:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = DefaultBaseURL
	c.RequestTimeout = 10 * time.Second
	c.DataDir = defaultDataDir()
	c.KeychainPassphrase = ""
	c.StartupPolicy = string(PolicyRestore)
	c.CatalogCacheTTL = 5 * time.Minute
	c.RetryAttempts = 3
	c.LogLevel = "info"
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "raisineat")
	}
	return ".raisineat"
}

// DBPath is the SQLite database inside DataDir.
func (c *Config) DBPath() string { return filepath.Join(c.DataDir, dbFileName) }

// DeviceKeyPath is the generated vault secret used when no passphrase is set.
func (c *Config) DeviceKeyPath() string { return filepath.Join(c.DataDir, deviceKeyName) }

// Policy returns the parsed startup policy.
func (c *Config) Policy() Policy {
	p, err := ParsePolicy(c.StartupPolicy)
	if err != nil {
		return PolicyRestore
	}
	return p
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("base url %q is not an absolute URL", c.BaseURL))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("data dir must be set"))
	}
	if _, err := ParsePolicy(c.StartupPolicy); err != nil {
		errs = append(errs, err)
	}
	if c.CatalogCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("catalog cache ttl must not be negative, got %s", c.CatalogCacheTTL))
	}
	if c.RetryAttempts < 1 {
		errs = append(errs, fmt.Errorf("retry attempts must be at least 1, got %d", c.RetryAttempts))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LoadConfig constructs a Config from args (usually os.Args[1:]): defaults,
// then JSON, then environment, then flags. Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg, args); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

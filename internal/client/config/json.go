package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/raisineat/internal/flagx"
	"github.com/dmitrijs2005/raisineat/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields keep the values already in Config.
type JsonConfig struct {
	BaseURL            *string         `json:"base_url"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	DataDir            *string         `json:"data_dir"`
	KeychainPassphrase *string         `json:"keychain_passphrase"`
	StartupPolicy      *string         `json:"startup_policy"`
	CatalogCacheTTL    *timex.Duration `json:"catalog_cache_ttl"`
	RetryAttempts      *int            `json:"retry_attempts"`
	LogLevel           *string         `json:"log_level"`
}

// parseJSON overlays cfg with the file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setIf(&cfg.BaseURL, jc.BaseURL)
	setIf(&cfg.DataDir, jc.DataDir)
	setIf(&cfg.KeychainPassphrase, jc.KeychainPassphrase)
	setIf(&cfg.StartupPolicy, jc.StartupPolicy)
	setIf(&cfg.RetryAttempts, jc.RetryAttempts)
	setIf(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.CatalogCacheTTL != nil {
		cfg.CatalogCacheTTL = jc.CatalogCacheTTL.Duration
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

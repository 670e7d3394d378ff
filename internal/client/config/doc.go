// Package config loads runtime configuration for the RaisinEat client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed RAISINEAT_, after loading an optional
//     dotenv file (-e/-env, or ./.env when present).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-u string   backend base URL
//	-t int      request timeout (seconds)
//	-d string   data directory (database and device key)
//	-p string   startup policy: restore or autologin
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations are timex.Duration values, so they can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "base_url": "https://rc-code-challenge.netlify.app/api/v1",
//	  "request_timeout": "10s",
//	  "data_dir": "/home/me/.config/raisineat",
//	  "startup_policy": "restore",
//	  "catalog_cache_ttl": "5m",
//	  "retry_attempts": 3,
//	  "log_level": "info"
//	}
package config

package config

import (
	"errors"
	"io/fs"

	"github.com/dmitrijs2005/raisineat/internal/flagx"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "RAISINEAT"

// parseEnv loads the dotenv file named by -e/-env (or ./.env when present)
// and overlays cfg with RAISINEAT_* variables. Variables already set in the
// environment win over the file; unset ones leave cfg untouched.
func parseEnv(cfg *Config, args []string) error {
	if path := flagx.EnvPath(args); path != "" {
		if err := godotenv.Load(path); err != nil {
			return err
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return envconfig.Process(envPrefix, cfg)
}

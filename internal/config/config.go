package config

import (
	"os"
	"path/filepath"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/knownasnaffy/saldo/pkg/logger"
)

var config *Config

// Config holds every setting the application reads from the environment.
// Only this struct may be consulted for configuration values; no direct
// os.Getenv calls elsewhere.
type Config struct {
	AppEnv   string `env:"APP_ENV,default=dev"`
	AppDebug bool   `env:"SALDO_DEBUG"`

	// DatabasePath overrides the default ~/.saldo/saldo.db location.
	DatabasePath string `env:"SALDO_DB_PATH"`
	// Currency is the marker prefixed to formatted amounts.
	Currency string `env:"SALDO_CURRENCY,default=₹"`
}

// Load reads an optional env file and then the process environment. A
// missing env file is not an error; a malformed one is.
func Load(path string) error {
	c := &Config{}

	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			logger.Debug("loading env file", "path", path)
			if err := godotenv.Load(path); err != nil {
				return errors.Wrap(err, "failed to load env file "+path)
			}
		}
	}

	if _, err := env.UnmarshalFromEnviron(c); err != nil {
		return errors.Wrap(err, "failed to map env variables to configuration")
	}

	config = c
	return nil
}

func Get() *Config {
	if config == nil {
		panic("config not loaded")
	}
	return config
}

// ResolveDatabasePath returns the configured database path, defaulting to
// saldo.db under a .saldo directory in the user's home.
func (c *Config) ResolveDatabasePath() (string, error) {
	if c.DatabasePath != "" {
		return c.DatabasePath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate home directory")
	}
	return filepath.Join(home, ".saldo", "saldo.db"), nil
}

// Package config loads client settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvAPIURL   = "NAJDENO_API_URL"
	EnvImageURL = "NAJDENO_IMAGE_URL"
	EnvDB       = "NAJDENO_DB"
	EnvLogLevel = "NAJDENO_LOG_LEVEL"
	EnvLogPath  = "NAJDENO_LOG"
	EnvTimeout  = "NAJDENO_TIMEOUT"
)

// Defaults.
const (
	DefaultAPIURL   = "http://127.0.0.1:10000"
	DefaultDBPath   = "najdeno.sqlite3"
	DefaultLogLevel = "warn"
	DefaultTimeout  = 30 * time.Second
)

// Config holds the client settings.
type Config struct {
	APIURL string `env:"NAJDENO_API_URL,default=http://127.0.0.1:10000"`
	// ImageURL serves relative image paths. Defaults to APIURL.
	ImageURL string        `env:"NAJDENO_IMAGE_URL"`
	DBPath   string        `env:"NAJDENO_DB,default=najdeno.sqlite3"`
	LogLevel string        `env:"NAJDENO_LOG_LEVEL,default=warn"`
	LogPath  string        `env:"NAJDENO_LOG"`
	Timeout  time.Duration `env:"NAJDENO_TIMEOUT,default=30s"`
}

// Load reads the given .env files (a missing file is ignored) and then the
// environment. Variables already set in the environment win over .env.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decoding environment: %w", err)
	}
	if cfg.ImageURL == "" {
		cfg.ImageURL = cfg.APIURL
	}
	if cfg.Timeout <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %s", EnvTimeout, cfg.Timeout)
	}
	return cfg, nil
}

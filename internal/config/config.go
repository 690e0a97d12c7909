// Package config loads CLI settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds FORMCHECK_* settings. Command line flags override them.
type Config struct {
	Form          string        `env:"FORMCHECK_FORM" envDefault:"login"`
	DefsDir       string        `env:"FORMCHECK_DEFS_DIR"`
	OpenAPI       string        `env:"FORMCHECK_OPENAPI"`
	Presets       string        `env:"FORMCHECK_PRESETS"`
	LocalesDir    string        `env:"FORMCHECK_LOCALES_DIR"`
	Locale        string        `env:"FORMCHECK_LOCALE" envDefault:"en"`
	Renderer      string        `env:"FORMCHECK_RENDERER" envDefault:"tui"`
	Format        string        `env:"FORMCHECK_FORMAT" envDefault:"json"`
	Cascade       bool          `env:"FORMCHECK_CASCADE" envDefault:"true"`
	ClearOnChange bool          `env:"FORMCHECK_CLEAR_ON_CHANGE"`
	MaxAttempts   int           `env:"FORMCHECK_MAX_ATTEMPTS" envDefault:"0"`
	HTTPTimeout   time.Duration `env:"FORMCHECK_HTTP_TIMEOUT" envDefault:"10s"`
}

// Load reads the given .env files (".env" when none are named) and parses the
// environment. Missing .env files are ignored; variables already set in the
// environment win over file values.
func Load(envFiles ...string) (Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", file, err)
		}
	}
	return Parse()
}

// Parse reads the environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if cfg.MaxAttempts < 0 {
		return Config{}, errors.New("config: FORMCHECK_MAX_ATTEMPTS must not be negative")
	}
	return cfg, nil
}

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config controls a generator run. Flags override the environment.
type Config struct {
	SourceURL    string        `env:"CATALOG_SOURCE_URL" envDefault:"https://openrouter.ai/api/v1/models"`
	OverridesDir string        `env:"CATALOG_OVERRIDES_DIR" envDefault:"models"`
	Output       string        `env:"CATALOG_OUTPUT" envDefault:"catalog.yaml"`
	CachePath    string        `env:"CATALOG_CACHE" envDefault:"data/models.json"`
	HTTPTimeout  time.Duration `env:"CATALOG_HTTP_TIMEOUT" envDefault:"30s"`
	LogLevel     string        `env:"CATALOG_LOG_LEVEL" envDefault:"info"`
}

func loadConfig() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

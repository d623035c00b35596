package main

import (
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds the environment defaults for llmroute. Flags override them.
type Config struct {
	CatalogPath string `env:"LLMROUTE_CATALOG" envDefault:"catalog.yaml"`
	TablesPath  string `env:"LLMROUTE_TABLES"`
	LogLevel    string `env:"LLMROUTE_LOG_LEVEL" envDefault:"info"`
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
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// Command catalog-gen builds a model catalog from an upstream model listing
// and local YAML overrides.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "catalog-gen",
		Short:         "Generate a model catalog from the upstream listing and local overrides",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			return run(cmd.Context(), cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.SourceURL, "source", cfg.SourceURL, "upstream model listing URL")
	flags.StringVar(&cfg.OverridesDir, "overrides", cfg.OverridesDir, "directory of YAML overrides")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "catalog file to write")
	flags.StringVar(&cfg.CachePath, "cache", cfg.CachePath, "raw listing cache used when the network is unavailable")
	flags.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	return cmd
}

func run(ctx context.Context, cfg *Config, logger zerolog.Logger) error {
	logger.Info().Str("source", cfg.SourceURL).Msg("starting catalog generator")

	upstream, err := newFetcher(cfg, logger).fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch models: %w", err)
	}
	logger.Info().Int("count", len(upstream)).Msg("fetched upstream models")

	overrides, err := loadOverrides(cfg.OverridesDir)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load overrides, skipping")
		overrides = map[string]modelOverride{}
	}
	logger.Info().Int("count", len(overrides)).Str("dir", cfg.OverridesDir).Msg("loaded overrides")

	models, err := buildCatalog(upstream, overrides, logger)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	if err := writeCatalog(cfg.Output, cfg.SourceURL, models); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	logger.Info().Int("models", len(models)).Str("output", cfg.Output).Msg("catalog written")
	return nil
}

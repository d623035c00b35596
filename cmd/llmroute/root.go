package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	llmrouter "github.com/kingfs/go-llm-router"
)

type app struct {
	cfg *Config
}

func newRootCmd(cfg *Config) *cobra.Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:           "llmroute",
		Short:         "Parse and resolve compact LLM model identifiers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "catalog YAML file or directory")
	flags.StringVar(&cfg.TablesPath, "tables", cfg.TablesPath, "alias and quirk tables YAML (defaults to the built-in tables)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(
		a.parseCmd(),
		a.formatCmd(),
		a.resolveCmd(),
		a.resolveAllCmd(),
		a.listCmd(),
	)
	return root
}

func (a *app) logger(cmd *cobra.Command) zerolog.Logger {
	return newLogger(cmd.ErrOrStderr(), a.cfg.LogLevel)
}

func (a *app) parser() (*llmrouter.Parser, error) {
	if a.cfg.TablesPath == "" {
		return llmrouter.NewParser(), nil
	}
	tables, err := llmrouter.LoadTablesFile(a.cfg.TablesPath)
	if err != nil {
		return nil, err
	}
	return llmrouter.NewParser(llmrouter.WithTables(tables)), nil
}

func (a *app) catalog() (*llmrouter.Catalog, error) {
	c, err := llmrouter.LoadCatalogPath(a.cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

func (a *app) selector(cmd *cobra.Command) (*llmrouter.Selector, error) {
	p, err := a.parser()
	if err != nil {
		return nil, err
	}
	c, err := a.catalog()
	if err != nil {
		return nil, err
	}
	logger := a.logger(cmd)
	logger.Debug().Int("models", c.Len()).Str("catalog", a.cfg.CatalogPath).Msg("catalog loaded")
	return llmrouter.NewSelector(c,
		llmrouter.WithParser(p),
		llmrouter.WithLogger(logger),
	), nil
}

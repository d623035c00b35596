package main

import (
	"fmt"

	"github.com/spf13/cobra"

	llmrouter "github.com/kingfs/go-llm-router"
)

func parseCapabilities(values []string) ([]llmrouter.Capability, error) {
	caps := make([]llmrouter.Capability, 0, len(values))
	for _, v := range values {
		c, err := llmrouter.ParseCapability(v)
		if err != nil {
			return nil, err
		}
		caps = append(caps, c)
	}
	return caps, nil
}

func (a *app) resolveCmd() *cobra.Command {
	var require []string

	cmd := &cobra.Command{
		Use:   "resolve <candidate>...",
		Short: "Resolve an ordered candidate list to one catalog entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caps, err := parseCapabilities(require)
			if err != nil {
				return err
			}
			s, err := a.selector(cmd)
			if err != nil {
				return err
			}
			r, err := s.ResolveCandidates(args, llmrouter.RequireCapabilities(caps...))
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), newResultView(r))
		},
	}
	cmd.Flags().StringSliceVar(&require, "require", nil, "capability every match must have (repeatable)")
	return cmd
}

func (a *app) resolveAllCmd() *cobra.Command {
	var require []string

	cmd := &cobra.Command{
		Use:   "resolve-all <expression>",
		Short: "Resolve each comma-separated group of an expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caps, err := parseCapabilities(require)
			if err != nil {
				return err
			}
			s, err := a.selector(cmd)
			if err != nil {
				return err
			}
			results := s.ResolveAll(args[0], llmrouter.RequireCapabilities(caps...))
			if len(results) == 0 {
				return fmt.Errorf("%w: no group in %q resolved", llmrouter.ErrNoViableModel, args[0])
			}
			views := make([]resultView, 0, len(results))
			for _, r := range results {
				views = append(views, newResultView(r))
			}
			return writeYAML(cmd.OutOrStdout(), views)
		},
	}
	cmd.Flags().StringSliceVar(&require, "require", nil, "capability every match must have (repeatable)")
	return cmd
}

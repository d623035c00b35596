package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <identifier>",
		Short: "Print the structured form of an identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.parser()
			if err != nil {
				return err
			}
			parsed, err := p.Parse(args[0])
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), newIdentifierView(parsed))
		},
	}
}

func (a *app) formatCmd() *cobra.Command {
	var noAt bool

	cmd := &cobra.Command{
		Use:   "format <identifier>",
		Short: "Print the canonical form of an identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.parser()
			if err != nil {
				return err
			}
			parsed, err := p.Parse(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), parsed.Format(!noAt))
			return err
		},
	}
	cmd.Flags().BoolVar(&noAt, "no-at", false, "omit the leading @ marker")
	return cmd
}

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func (a *app) listCmd() *cobra.Command {
	var (
		provider string
		author   string
		has      []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caps, err := parseCapabilities(has)
			if err != nil {
				return err
			}
			catalog, err := a.catalog()
			if err != nil {
				return err
			}

			models := catalog.Query().Provider(provider).Author(author).Has(caps...).List()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPROVIDER\tCAPABILITIES\tSLUG")
			for _, m := range models {
				slug := m.CanonicalSlug
				if m.Composite {
					slug = "-> " + strings.Join(m.Children, ", ")
				}
				capNames := make([]string, 0, len(m.Capabilities))
				for _, c := range m.Capabilities.Sorted() {
					capNames = append(capNames, c.String())
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					m.ID(), displayName(m.Provider), strings.Join(capNames, ","), slug)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "only entries served by this provider")
	cmd.Flags().StringVar(&author, "author", "", "only entries from this author")
	cmd.Flags().StringSliceVar(&has, "has", nil, "only entries with this capability (repeatable)")
	return cmd
}

// displayName turns a provider or author key into its display form.
func displayName(key string) string {
	lower := strings.ToLower(key)
	switch lower {
	case "":
		return "-"
	case "alibaba", "qwen":
		return "Qwen"
	case "01-ai", "01.ai":
		return "01.AI"
	case "mistralai", "mistral":
		return "Mistral"
	case "meta-llama", "llama":
		return "Meta"
	case "openai":
		return "OpenAI"
	case "openrouter":
		return "OpenRouter"
	case "nousresearch":
		return "Nous Research"
	case "deepseek":
		return "DeepSeek"
	case "x-ai", "xai":
		return "xAI"
	default:
		return cases.Title(language.English).String(lower)
	}
}

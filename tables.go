package llmrouter

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Tables bundles the alias table and the vendor-quirk rules a Parser uses.
type Tables struct {
	Aliases AliasTable
	Quirks  []QuirkRule
}

// tablesFile is the on-disk YAML layout of Tables.
type tablesFile struct {
	Aliases map[string]string `yaml:"aliases"`
	Quirks  []QuirkRule       `yaml:"quirks"`
}

// DefaultAliases returns the built-in shortcut table.
func DefaultAliases() AliasTable {
	return MustAliasTable(map[string]string{
		"4o":         "gpt-4o",
		"4o-mini":    "gpt-4o-mini",
		"4.1":        "gpt-4.1",
		"o3":         "openai/o3",
		"sonnet":     "anthropic/claude-sonnet-4",
		"opus":       "anthropic/claude-opus-4",
		"haiku":      "anthropic/claude-3.5-haiku",
		"gemini":     "google/gemini-2.5-pro",
		"flash":      "google/gemini-2.5-flash",
		"r1":         "deepseek/deepseek-r1",
		"llama":      "meta-llama/llama-3.3-70b-instruct",
		"sonnet-3.7": "anthropic/claude-3.7-sonnet",
	})
}

// DefaultQuirkRules returns the built-in vendor-quirk rules.
func DefaultQuirkRules() []QuirkRule {
	return []QuirkRule{
		{
			ModelPrefix:         "claude-3.7-sonnet",
			VendorToken:         "thinking",
			CanonicalCapability: CapReasoning,
			ModelSuffix:         "-thinking",
		},
	}
}

// DefaultTables returns the built-in aliases and quirk rules.
func DefaultTables() Tables {
	return Tables{Aliases: DefaultAliases(), Quirks: DefaultQuirkRules()}
}

// LoadTables reads alias and quirk tables from YAML:
//
//	aliases:
//	  4o: gpt-4o
//	quirks:
//	  - model_prefix: claude-3.7-sonnet
//	    vendor_token: thinking
//	    capability: reasoning
//	    model_suffix: -thinking
func LoadTables(r io.Reader) (Tables, error) {
	var f tablesFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Tables{}, fmt.Errorf("decode tables: %w", err)
	}

	aliases, err := NewAliasTable(f.Aliases)
	if err != nil {
		return Tables{}, err
	}

	var errs []error
	for i, q := range f.Quirks {
		if q.ModelPrefix == "" {
			errs = append(errs, fmt.Errorf("quirk %d: model_prefix is required", i))
		}
		if !q.CanonicalCapability.Valid() {
			errs = append(errs, fmt.Errorf("quirk %d: invalid capability %q", i, q.CanonicalCapability))
		}
		if q.VendorToken != "" && !q.VendorToken.Valid() {
			errs = append(errs, fmt.Errorf("quirk %d: invalid vendor_token %q", i, q.VendorToken))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return Tables{}, err
	}

	return Tables{Aliases: aliases, Quirks: f.Quirks}, nil
}

// LoadTablesFile reads tables from a YAML file.
func LoadTablesFile(path string) (Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tables{}, fmt.Errorf("open tables: %w", err)
	}
	defer f.Close()

	return LoadTables(f)
}

package main

import (
	"io"

	"gopkg.in/yaml.v3"

	llmrouter "github.com/kingfs/go-llm-router"
)

type identifierView struct {
	Provider     string         `yaml:"provider,omitempty"`
	Author       string         `yaml:"author,omitempty"`
	Model        string         `yaml:"model"`
	Capabilities []string       `yaml:"capabilities,omitempty"`
	Config       map[string]any `yaml:"config,omitempty"`
	Canonical    string         `yaml:"canonical"`
}

func newIdentifierView(p llmrouter.ParsedIdentifier) identifierView {
	v := identifierView{
		Provider:  p.Provider,
		Author:    p.Author,
		Model:     p.Model,
		Config:    p.Config.Map(),
		Canonical: p.Format(true),
	}
	for _, c := range p.Capabilities {
		v.Capabilities = append(v.Capabilities, c.String())
	}
	return v
}

type resultView struct {
	Model      llmrouter.ModelDescriptor `yaml:"model"`
	Parsed     identifierView            `yaml:"parsed"`
	Requested  identifierView            `yaml:"requested"`
	Candidates []string                  `yaml:"candidates"`
}

func newResultView(r *llmrouter.ResolutionResult) resultView {
	v := resultView{
		Model:     r.Model,
		Parsed:    newIdentifierView(r.Parsed),
		Requested: newIdentifierView(r.Requested),
	}
	for _, c := range r.Candidates {
		v.Candidates = append(v.Candidates, c.Input)
	}
	return v
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

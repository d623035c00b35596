package main

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	llmrouter "github.com/kingfs/go-llm-router"
)

const upstreamProvider = "openrouter"

// splitUpstreamID maps author/name[:variant] to an author, a parser-safe
// model name (name-variant) and the canonical slug (the ID itself).
func splitUpstreamID(id string) (author, name, slug string) {
	slug = id
	name = id
	if i := strings.LastIndex(id, "/"); i >= 0 {
		author, name = id[:i], id[i+1:]
	}
	if base, variant, ok := strings.Cut(name, ":"); ok {
		name = base + "-" + variant
	}
	return author, name, slug
}

// calculateCapabilities derives capabilities from the upstream listing.
func calculateCapabilities(m upstreamModel) llmrouter.CapabilitySet {
	caps := llmrouter.CapabilitySet{}

	for _, mod := range m.Architecture.InputModalities {
		switch strings.ToLower(mod) {
		case "image", "video":
			caps[llmrouter.CapVision] = struct{}{}
		case "audio":
			caps[llmrouter.CapAudio] = struct{}{}
		case "file":
			caps[llmrouter.CapFiles] = struct{}{}
		}
	}
	for _, mod := range m.Architecture.OutputModalities {
		if strings.ToLower(mod) == "image" {
			caps[llmrouter.CapImageGeneration] = struct{}{}
		}
	}

	for _, p := range m.SupportedParameters {
		switch p {
		case "tools", "tool_choice":
			caps[llmrouter.CapTools] = struct{}{}
		case "response_format", "structured_outputs":
			caps[llmrouter.CapJSON] = struct{}{}
		case "reasoning", "include_reasoning":
			caps[llmrouter.CapReasoning] = struct{}{}
		case "web_search_options":
			caps[llmrouter.CapWebSearch] = struct{}{}
		}
	}

	// Older listings have no parameters; fall back to the description.
	desc := strings.ToLower(m.Description)
	if len(m.SupportedParameters) == 0 && strings.Contains(desc, "function calling") {
		caps[llmrouter.CapTools] = struct{}{}
	}
	if strings.Contains(desc, "#multimodal") {
		caps[llmrouter.CapVision] = struct{}{}
	}
	return caps
}

func parseCapabilityList(values []string) (llmrouter.CapabilitySet, error) {
	caps := llmrouter.CapabilitySet{}
	for _, v := range values {
		c, err := llmrouter.ParseCapability(v)
		if err != nil {
			return nil, err
		}
		caps[c] = struct{}{}
	}
	return caps, nil
}

// apply patches m with the non-zero fields of ov.
func (ov modelOverride) apply(m *llmrouter.ModelDescriptor) error {
	if ov.Name != "" {
		m.Name = ov.Name
	}
	if ov.Author != "" {
		m.Author = ov.Author
	}
	if ov.Provider != "" {
		m.Provider = ov.Provider
	}
	if ov.CanonicalSlug != "" {
		m.CanonicalSlug = ov.CanonicalSlug
	}
	if len(ov.Capabilities) > 0 {
		caps, err := parseCapabilityList(ov.Capabilities)
		if err != nil {
			return err
		}
		m.Capabilities = caps
	}
	if len(ov.ExtraCapabilities) > 0 {
		extra, err := parseCapabilityList(ov.ExtraCapabilities)
		if err != nil {
			return err
		}
		m.Capabilities = m.Capabilities.Union(extra)
	}
	if ov.Composite {
		m.Composite = true
		m.CanonicalSlug = ""
		m.Capabilities = llmrouter.CapabilitySet{}
	}
	if len(ov.Children) > 0 {
		m.Children = append([]string(nil), ov.Children...)
	}
	if ov.ChildPriority != "" {
		p, err := llmrouter.ParseChildPriority(ov.ChildPriority)
		if err != nil {
			return err
		}
		m.ChildPriority = p
	}
	return nil
}

// buildCatalog merges the upstream listing with local overrides and returns
// validated entries: concrete models sorted by canonical slug, then
// composites sorted by ID.
func buildCatalog(upstream []upstreamModel, overrides map[string]modelOverride, logger zerolog.Logger) ([]llmrouter.ModelDescriptor, error) {
	models := make([]llmrouter.ModelDescriptor, 0, len(upstream)+len(overrides))
	seen := make(map[string]bool, len(upstream))
	var errs []error

	for _, um := range upstream {
		if um.ID == "" || seen[um.ID] {
			continue
		}
		seen[um.ID] = true

		author, name, slug := splitUpstreamID(um.ID)
		m := llmrouter.ModelDescriptor{
			Name:          name,
			Author:        author,
			Provider:      upstreamProvider,
			CanonicalSlug: slug,
			Capabilities:  calculateCapabilities(um),
		}

		if ov, ok := overrides[um.ID]; ok {
			if ov.Exclude {
				logger.Debug().Str("id", um.ID).Msg("excluded by override")
				continue
			}
			if err := ov.apply(&m); err != nil {
				errs = append(errs, fmt.Errorf("override %s: %w", um.ID, err))
				continue
			}
		}
		models = append(models, m)
	}

	// Local-only entries, in key order for deterministic output.
	ids := make([]string, 0, len(overrides))
	for id := range overrides {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	for _, id := range ids {
		ov := overrides[id]
		if ov.Exclude {
			continue
		}
		author, name, slug := splitUpstreamID(id)
		m := llmrouter.ModelDescriptor{
			Name:          name,
			Author:        author,
			CanonicalSlug: slug,
			Capabilities:  llmrouter.CapabilitySet{},
		}
		if err := ov.apply(&m); err != nil {
			errs = append(errs, fmt.Errorf("override %s: %w", id, err))
			continue
		}
		models = append(models, m)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	slices.SortStableFunc(models, func(a, b llmrouter.ModelDescriptor) int {
		if a.Composite != b.Composite {
			if a.Composite {
				return 1
			}
			return -1
		}
		if a.Composite {
			return cmp.Compare(a.ID(), b.ID())
		}
		return cmp.Compare(a.CanonicalSlug, b.CanonicalSlug)
	})

	if err := llmrouter.ValidateModels(models); err != nil {
		return nil, err
	}
	return models, nil
}

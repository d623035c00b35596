package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// overrideFile is one YAML file in the overrides directory, keyed by
// upstream ID (author/name[:variant]) or, for local-only entries, by any
// unique key.
type overrideFile struct {
	Models map[string]modelOverride `yaml:"models"`
}

// modelOverride patches an upstream model or, when no upstream model has its
// ID, adds a local entry. Zero fields leave the upstream value alone.
type modelOverride struct {
	ID                string   `yaml:"id"`
	Name              string   `yaml:"name"`
	Author            string   `yaml:"author"`
	Provider          string   `yaml:"provider"`
	CanonicalSlug     string   `yaml:"canonical_slug"`
	Capabilities      []string `yaml:"capabilities"`
	ExtraCapabilities []string `yaml:"extra_capabilities"`
	Composite         bool     `yaml:"composite"`
	Children          []string `yaml:"children"`
	ChildPriority     string   `yaml:"child_priority"`
	Exclude           bool     `yaml:"exclude"`
}

// loadOverrides reads every .yaml/.yml file under root. A file holds either
// a models map or a single override with an id. A missing root yields no
// overrides.
func loadOverrides(root string) (map[string]modelOverride, error) {
	overrides := make(map[string]modelOverride)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || (!strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml")) {
			return nil
		}

		body, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var data overrideFile
		if err := yaml.Unmarshal(body, &data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if len(data.Models) > 0 {
			for id, m := range data.Models {
				if m.ID == "" {
					m.ID = id
				}
				overrides[m.ID] = m
			}
			return nil
		}

		var single modelOverride
		if err := yaml.Unmarshal(body, &single); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if single.ID != "" {
			overrides[single.ID] = single
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return overrides, nil
	}
	return overrides, err
}

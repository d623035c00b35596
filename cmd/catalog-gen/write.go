package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	llmrouter "github.com/kingfs/go-llm-router"
)

const catalogHeader = "# Code generated by catalog-gen. DO NOT EDIT.\n# Source: %s\n\n"

type catalogFile struct {
	Models []llmrouter.ModelDescriptor `yaml:"models"`
}

func encodeCatalog(w io.Writer, source string, models []llmrouter.ModelDescriptor) error {
	if _, err := fmt.Fprintf(w, catalogHeader, source); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(catalogFile{Models: models}); err != nil {
		return err
	}
	return enc.Close()
}

// writeCatalog writes the catalog to a temporary file next to path and
// renames it into place.
func writeCatalog(path, source string, models []llmrouter.ModelDescriptor) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".catalog-*.yaml")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := encodeCatalog(f, source, models); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

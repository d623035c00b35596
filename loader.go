package llmrouter

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML layout of a catalog document.
type catalogFile struct {
	Models []ModelDescriptor `yaml:"models"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadCatalog reads a YAML catalog document. Entries keep document order.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	models, err := decodeModels(r)
	if err != nil {
		return nil, err
	}
	if err := ValidateModels(models); err != nil {
		return nil, err
	}
	return NewCatalog(models...), nil
}

// LoadCatalogFile reads a catalog from a single YAML file.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	c, err := LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadCatalogDir concatenates every .yaml/.yml file under root, visiting
// files in lexical path order.
func LoadCatalogDir(root string) (*Catalog, error) {
	var models []ModelDescriptor

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || (!strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml")) {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		found, err := decodeModels(f)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		models = append(models, found...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load catalog dir: %w", err)
	}

	if err := ValidateModels(models); err != nil {
		return nil, err
	}
	return NewCatalog(models...), nil
}

// LoadCatalogPath loads a directory with LoadCatalogDir and anything else
// with LoadCatalogFile.
func LoadCatalogPath(path string) (*Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat catalog: %w", err)
	}
	if info.IsDir() {
		return LoadCatalogDir(path)
	}
	return LoadCatalogFile(path)
}

func decodeModels(r io.Reader) ([]ModelDescriptor, error) {
	var doc catalogFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i := range doc.Models {
		applyDefaults(&doc.Models[i])
	}
	return doc.Models, nil
}

// applyDefaults fills the canonical slug of concrete entries.
func applyDefaults(m *ModelDescriptor) {
	if m.Capabilities == nil {
		m.Capabilities = CapabilitySet{}
	}
	if m.CanonicalSlug != "" || m.Composite {
		return
	}
	if m.Author != "" {
		m.CanonicalSlug = m.Author + "/" + m.Name
	} else {
		m.CanonicalSlug = m.Name
	}
}

// ValidateModels checks every entry and joins all problems into one error
// wrapping ErrInvalidCatalog.
func ValidateModels(models []ModelDescriptor) error {
	var errs []error
	for i, m := range models {
		label := fmt.Sprintf("model %d (%s)", i, m.ID())
		if err := validate.Struct(m); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", label, err))
		}
		if m.Composite && len(m.Children) == 0 {
			errs = append(errs, fmt.Errorf("%s: composite model has no children", label))
		}
		if !m.Composite && len(m.Children) > 0 {
			errs = append(errs, fmt.Errorf("%s: children are only allowed on composite models", label))
		}
		for _, c := range m.Capabilities.Sorted() {
			if !c.Valid() {
				errs = append(errs, fmt.Errorf("%s: invalid capability %q", label, c))
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
}

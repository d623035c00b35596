// Package llmrouter parses compact model identifiers such as
// "openrouter/openai/gpt-4o:vision(seed:1)" and resolves them against a
// catalog of model descriptors, expanding composite models into their
// children and picking one capability-satisfying entry.
package llmrouter

import "strings"

// Catalog is an ordered, read-only list of model descriptors. Order is the
// caller's preference order: Lookup returns the first match.
type Catalog struct {
	models []ModelDescriptor
}

// NewCatalog copies models into a catalog, preserving their order.
func NewCatalog(models ...ModelDescriptor) *Catalog {
	return &Catalog{models: append([]ModelDescriptor(nil), models...)}
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.models)
}

// Models returns a copy of the entries in catalog order.
func (c *Catalog) Models() []ModelDescriptor {
	return append([]ModelDescriptor(nil), c.models...)
}

// Lookup returns the first entry whose provider and author match the
// identifier's (when given) and whose name or canonical slug equals the
// identifier's model.
func (c *Catalog) Lookup(p ParsedIdentifier) (ModelDescriptor, bool) {
	for _, m := range c.models {
		if m.matches(p) {
			return m, true
		}
	}
	return ModelDescriptor{}, false
}

// QueryBuilder provides a chainable API for filtering catalog entries.
type QueryBuilder struct {
	catalog   *Catalog
	provider  string
	author    string
	required  []Capability
	composite *bool
}

// Query starts a new query builder over the catalog.
func (c *Catalog) Query() *QueryBuilder {
	return &QueryBuilder{catalog: c}
}

// Provider filters entries by provider name (case-insensitive).
func (q *QueryBuilder) Provider(p string) *QueryBuilder {
	q.provider = p
	return q
}

// Author filters entries by author name (case-insensitive).
func (q *QueryBuilder) Author(a string) *QueryBuilder {
	q.author = a
	return q
}

// Has filters entries by capability. Repeated calls accumulate.
func (q *QueryBuilder) Has(caps ...Capability) *QueryBuilder {
	q.required = append(q.required, caps...)
	return q
}

// Composite keeps only composite (true) or only concrete (false) entries.
func (q *QueryBuilder) Composite(v bool) *QueryBuilder {
	q.composite = &v
	return q
}

// List returns the matching entries in catalog order.
func (q *QueryBuilder) List() []ModelDescriptor {
	var results []ModelDescriptor
	for _, m := range q.catalog.models {
		// Filter by provider
		if q.provider != "" && !strings.EqualFold(m.Provider, q.provider) {
			continue
		}
		// Filter by author
		if q.author != "" && !strings.EqualFold(m.Author, q.author) {
			continue
		}
		// Filter by capabilities
		if !m.Capabilities.HasAll(q.required...) {
			continue
		}
		if q.composite != nil && m.Composite != *q.composite {
			continue
		}
		results = append(results, m)
	}
	return results
}

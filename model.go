package llmrouter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ChildPriority selects how a composite model picks among its
// capability-satisfying children.
type ChildPriority int

const (
	// ChildPriorityFirst picks the first satisfying child in declared order.
	ChildPriorityFirst ChildPriority = iota
	// ChildPriorityRandom picks a child by seed, or uniformly at random.
	ChildPriorityRandom
)

func (p ChildPriority) String() string {
	switch p {
	case ChildPriorityFirst:
		return "first"
	case ChildPriorityRandom:
		return "random"
	default:
		return fmt.Sprintf("ChildPriority(%d)", int(p))
	}
}

// ParseChildPriority converts "first" or "random" (any case) to a ChildPriority.
// The empty string maps to ChildPriorityFirst.
func ParseChildPriority(s string) (ChildPriority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return ChildPriorityFirst, nil
	case "random":
		return ChildPriorityRandom, nil
	}
	return ChildPriorityFirst, fmt.Errorf("unknown child priority %q", s)
}

func (p ChildPriority) MarshalYAML() (any, error) {
	return p.String(), nil
}

func (p *ChildPriority) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseChildPriority(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ModelDescriptor is a catalog entry. Descriptors are built once at startup
// and treated as read-only afterwards.
type ModelDescriptor struct {
	Name     string `yaml:"name" validate:"required"`
	Author   string `yaml:"author,omitempty"`
	Provider string `yaml:"provider,omitempty"`

	Capabilities CapabilitySet `yaml:"capabilities,omitempty"`

	// CanonicalSlug is the identifier used to call the downstream provider.
	CanonicalSlug string `yaml:"canonical_slug,omitempty"`

	// Composite entries have no backend of their own; they stand in for
	// Children, tried according to ChildPriority.
	Composite     bool          `yaml:"composite,omitempty"`
	Children      []string      `yaml:"children,omitempty" validate:"dive,required"`
	ChildPriority ChildPriority `yaml:"child_priority,omitempty" validate:"min=0,max=1"`
}

// ID returns the fully qualified provider/author/name of the descriptor.
func (m ModelDescriptor) ID() string {
	var b strings.Builder
	if m.Provider != "" {
		b.WriteString(m.Provider)
		b.WriteByte('/')
	}
	if m.Author != "" {
		b.WriteString(m.Author)
		b.WriteByte('/')
	}
	b.WriteString(m.Name)
	return b.String()
}

// HasCapability reports whether the descriptor declares c.
func (m ModelDescriptor) HasCapability(c Capability) bool {
	return m.Capabilities.Has(c)
}

// matches implements the catalog lookup predicate for a parsed identifier.
func (m ModelDescriptor) matches(p ParsedIdentifier) bool {
	if p.Provider != "" && p.Provider != m.Provider {
		return false
	}
	if p.Author != "" && p.Author != m.Author {
		return false
	}
	return p.Model == m.Name || p.Model == m.CanonicalSlug
}

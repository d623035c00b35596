package llmrouter

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Capability names an optional feature a model may support.
// Unknown values are legal; capabilities compare by exact value.
type Capability string

const (
	CapReasoning       Capability = "reasoning"
	CapCode            Capability = "code"
	CapVision          Capability = "vision"
	CapTools           Capability = "tools"
	CapJSON            Capability = "json"
	CapAudio           Capability = "audio"
	CapFiles           Capability = "files"
	CapWebSearch       Capability = "web_search"
	CapImageGeneration Capability = "image_generation"
)

// reserved characters belong to the identifier grammar.
const reserved = ",:/()@"

// Valid reports whether c can appear in an identifier and a catalog entry.
func (c Capability) Valid() bool {
	if c == "" {
		return false
	}
	for _, r := range c {
		if strings.ContainsRune(reserved, r) || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Known reports whether c is one of the well-known capabilities.
func (c Capability) Known() bool {
	switch c {
	case CapReasoning, CapCode, CapVision, CapTools, CapJSON,
		CapAudio, CapFiles, CapWebSearch, CapImageGeneration:
		return true
	}
	return false
}

func (c Capability) String() string {
	return string(c)
}

// ParseCapability trims s and validates it.
func ParseCapability(s string) (Capability, error) {
	c := Capability(strings.TrimSpace(s))
	if !c.Valid() {
		return "", fmt.Errorf("invalid capability %q", s)
	}
	return c, nil
}

// CapabilitySet is an unordered set of capabilities.
type CapabilitySet map[Capability]struct{}

// NewCapabilitySet builds a set from caps, ignoring duplicates.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

// Has checks if the set contains c.
func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// HasAll checks if the set contains every capability in required.
func (s CapabilitySet) HasAll(required ...Capability) bool {
	for _, c := range required {
		if !s.Has(c) {
			return false
		}
	}
	return true
}

// Union returns a new set holding the members of s and other.
func (s CapabilitySet) Union(other CapabilitySet) CapabilitySet {
	out := make(CapabilitySet, len(s)+len(other))
	for c := range s {
		out[c] = struct{}{}
	}
	for c := range other {
		out[c] = struct{}{}
	}
	return out
}

// Sorted returns the members in lexical order.
func (s CapabilitySet) Sorted() []Capability {
	out := make([]Capability, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// MarshalYAML writes the set as a sorted sequence.
func (s CapabilitySet) MarshalYAML() (any, error) {
	return s.Sorted(), nil
}

// UnmarshalYAML reads the set from a sequence of strings.
func (s *CapabilitySet) UnmarshalYAML(value *yaml.Node) error {
	var list []Capability
	if err := value.Decode(&list); err != nil {
		return fmt.Errorf("capabilities: %w", err)
	}
	*s = NewCapabilitySet(list...)
	return nil
}

// Supports reports whether have satisfies every capability in required.
// An empty required set is always satisfied.
func Supports(have, required CapabilitySet) bool {
	for c := range required {
		if !have.Has(c) {
			return false
		}
	}
	return true
}

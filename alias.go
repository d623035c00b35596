package llmrouter

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// AliasTable maps whole identifier strings to replacement identifiers.
// The zero value is an empty table. Tables are immutable once built.
type AliasTable struct {
	entries map[string]string
}

// NewAliasTable copies entries into a table. Keys may not carry leading or
// trailing whitespace since the parser trims its input before lookup. An
// entry whose target is itself an alias key fails with *AliasCycleError;
// chains are never followed.
func NewAliasTable(entries map[string]string) (AliasTable, error) {
	table := AliasTable{entries: make(map[string]string, len(entries))}
	for _, alias := range slices.Sorted(maps.Keys(entries)) {
		target := entries[alias]
		if strings.TrimSpace(alias) == "" || strings.TrimSpace(target) == "" || strings.TrimSpace(alias) != alias {
			return AliasTable{}, fmt.Errorf("%w: %q -> %q", ErrInvalidAlias, alias, target)
		}
		if _, ok := entries[target]; ok {
			return AliasTable{}, &AliasCycleError{Alias: alias, Target: target}
		}
		table.entries[alias] = target
	}
	return table, nil
}

// MustAliasTable is like NewAliasTable but panics on error.
func MustAliasTable(entries map[string]string) AliasTable {
	t, err := NewAliasTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve returns the target for raw, or raw itself when it is not an alias.
func (t AliasTable) Resolve(raw string) string {
	if target, ok := t.entries[raw]; ok {
		return target
	}
	return raw
}

// Len returns the number of aliases.
func (t AliasTable) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the table contents.
func (t AliasTable) Entries() map[string]string {
	return maps.Clone(t.entries)
}

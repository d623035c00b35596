package llmrouter

import (
	"fmt"
	"strings"
)

// Parser turns identifier strings into ParsedIdentifiers. It applies its
// alias table before parsing and its quirk rules after. A Parser is
// immutable and safe for concurrent use.
type Parser struct {
	aliases AliasTable
	quirks  []QuirkRule
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithAliases replaces the parser's alias table.
func WithAliases(t AliasTable) ParserOption {
	return func(p *Parser) { p.aliases = t }
}

// WithQuirkRules replaces the parser's vendor-quirk rules.
func WithQuirkRules(rules ...QuirkRule) ParserOption {
	return func(p *Parser) { p.quirks = append([]QuirkRule(nil), rules...) }
}

// WithTables installs both tables from a loaded Tables value.
func WithTables(t Tables) ParserOption {
	return func(p *Parser) {
		p.aliases = t.Aliases
		p.quirks = append([]QuirkRule(nil), t.Quirks...)
	}
}

// NewParser returns a parser using DefaultAliases and DefaultQuirkRules
// unless overridden by opts.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		aliases: DefaultAliases(),
		quirks:  DefaultQuirkRules(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse parses identifier with the default tables.
func Parse(identifier string) (ParsedIdentifier, error) {
	return defaultParser.Parse(identifier)
}

// Parse trims identifier, resolves it as a whole against the alias table,
// strips a leading '@' and parses
//
//	["@"] segment ["/" segment ["/" segment]] [":" cap ("," cap)*] ["(" key ":" value ("," key ":" value)* ")"]
//
// Segments are assigned from the right: model, author, provider. Only a
// single, trailing level of parentheses is recognized.
func (p *Parser) Parse(identifier string) (ParsedIdentifier, error) {
	s := p.aliases.Resolve(strings.TrimSpace(identifier))
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "@"))

	var result ParsedIdentifier

	if strings.HasSuffix(s, ")") {
		if open := strings.LastIndexByte(s, '('); open >= 0 {
			result.Config = parseConfigBlock(s[open+1 : len(s)-1])
			s = s[:open]
		}
	}

	path, caps, _ := strings.Cut(s, ":")
	capabilities, err := parseCapabilities(caps)
	if err != nil {
		return ParsedIdentifier{}, &MalformedIdentifierError{Input: identifier, Reason: err.Error()}
	}
	result.Capabilities = capabilities

	segments := strings.Split(path, "/")
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
		if strings.ContainsAny(segments[i], segmentReserved) {
			return ParsedIdentifier{}, &MalformedIdentifierError{
				Input:  identifier,
				Reason: fmt.Sprintf("segment %q contains one of %q", segments[i], segmentReserved),
			}
		}
	}
	n := len(segments)
	result.Model = segments[n-1]
	if n >= 2 {
		result.Author = segments[n-2]
	}
	if n >= 3 {
		result.Provider = strings.Join(segments[:n-2], "/")
	}

	if result.Model == "" {
		return ParsedIdentifier{}, &MalformedIdentifierError{Input: identifier}
	}

	return ApplyQuirks(result, p.quirks), nil
}

// segmentReserved may not appear in a path segment; Format could not
// round-trip it.
const segmentReserved = "():@"

func parseCapabilities(raw string) ([]Capability, error) {
	caps := []Capability{}
	for _, part := range strings.Split(raw, ",") {
		c := Capability(strings.TrimSpace(part))
		if c == "" {
			continue
		}
		if !c.Valid() {
			return nil, fmt.Errorf("invalid capability %q", c)
		}
		caps = append(caps, c)
	}
	return caps, nil
}

// parseConfigBlock returns nil when the block holds no pairs.
func parseConfigBlock(raw string) *SystemConfig {
	var cfg *SystemConfig
	for _, pair := range strings.Split(raw, ",") {
		key, value, _ := strings.Cut(pair, ":")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if cfg == nil {
			cfg = newSystemConfig()
		}
		cfg.set(key, parseConfigValue(strings.TrimSpace(value)))
	}
	return cfg
}

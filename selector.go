package llmrouter

import (
	"math/rand/v2"
	"strings"

	"github.com/rs/zerolog"
)

// Candidate is a capability-satisfying catalog match for one candidate
// identifier.
type Candidate struct {
	Input  string
	Parsed ParsedIdentifier
	Model  ModelDescriptor
}

// ResolutionResult is the outcome of a successful resolution.
type ResolutionResult struct {
	// Model is the selected catalog entry; call the downstream provider with
	// Model.CanonicalSlug.
	Model ModelDescriptor
	// Parsed is the parse of the candidate that produced Model.
	Parsed ParsedIdentifier
	// Requested is the parse of the first caller-supplied candidate. Its
	// Config carries the caller's generation parameters, also when Model was
	// reached through a composite expansion.
	Requested ParsedIdentifier
	// Candidates lists every capability-satisfying candidate in scan order.
	Candidates []Candidate
}

// Selector resolves identifiers against a catalog. It holds no mutable
// state and is safe for concurrent use as long as its random source is.
type Selector struct {
	catalog *Catalog
	parser  *Parser
	logger  zerolog.Logger
	intN    func(n int) int
}

// Option configures a Selector.
type Option func(*Selector)

// WithParser sets the parser (and thereby the alias and quirk tables).
func WithParser(p *Parser) Option {
	return func(s *Selector) { s.parser = p }
}

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Selector) { s.logger = l }
}

// WithRandom sets the source of the unseeded random tie-break. intN must
// return a value in [0, n).
func WithRandom(intN func(n int) int) Option {
	return func(s *Selector) { s.intN = intN }
}

// NewSelector returns a selector over catalog.
// A nil catalog is treated as empty.
func NewSelector(catalog *Catalog, opts ...Option) *Selector {
	if catalog == nil {
		catalog = NewCatalog()
	}
	s := &Selector{
		catalog: catalog,
		parser:  defaultParser,
		logger:  zerolog.Nop(),
		intN:    rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Parser returns the selector's parser.
func (s *Selector) Parser() *Parser {
	return s.parser
}

// ResolveOption adjusts a single resolution.
type ResolveOption func(*resolveConfig)

type resolveConfig struct {
	required []Capability
}

// RequireCapabilities adds capabilities every candidate must support on top
// of the ones in its identifier.
func RequireCapabilities(caps ...Capability) ResolveOption {
	return func(c *resolveConfig) { c.required = append(c.required, caps...) }
}

// Resolve resolves a single identifier.
func (s *Selector) Resolve(input string, opts ...ResolveOption) (*ResolutionResult, error) {
	return s.ResolveCandidates([]string{input}, opts...)
}

// ResolveCandidates resolves an ordered list of candidate identifiers to
// exactly one catalog entry.
//
// Only the first candidate decides whether composite expansion happens: when
// it names a composite model, the whole list is replaced by that model's
// children, each carrying the first candidate's capabilities. Every
// candidate is then scanned; the winner is the first match, unless the
// composite uses ChildPriorityRandom.
func (s *Selector) ResolveCandidates(inputs []string, opts ...ResolveOption) (*ResolutionResult, error) {
	var cfg resolveConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(inputs) == 0 {
		return nil, &NoViableModelError{}
	}

	requested, err := s.parser.Parse(inputs[0])
	if err != nil {
		return nil, err
	}

	governing, found := s.catalog.Lookup(requested)
	candidates := inputs
	if found && governing.Composite {
		candidates = expandComposite(governing, requested.Capabilities)
		s.logger.Debug().
			Str("composite", governing.ID()).
			Strs("children", candidates).
			Msg("expanded composite model")
	}

	extra := NewCapabilitySet(cfg.required...)
	var (
		resolved  []Candidate
		malformed []error
	)
	for _, input := range candidates {
		parsed, err := s.parser.Parse(input)
		if err != nil {
			s.logger.Debug().Err(err).Str("candidate", input).Msg("skipping malformed candidate")
			malformed = append(malformed, err)
			continue
		}
		entry, ok := s.catalog.Lookup(parsed)
		if !ok {
			s.logger.Debug().Str("candidate", input).Msg("no catalog entry")
			continue
		}
		required := parsed.RequiredCapabilities().Union(extra)
		if !Supports(entry.Capabilities, required) {
			s.logger.Debug().
				Str("candidate", input).
				Str("model", entry.ID()).
				Strs("required", capabilityStrings(required.Sorted())).
				Msg("capabilities not satisfied")
			continue
		}
		resolved = append(resolved, Candidate{Input: input, Parsed: parsed, Model: entry})
	}

	if len(resolved) == 0 {
		return nil, &NoViableModelError{
			Attempted: append([]string(nil), candidates...),
			Malformed: malformed,
		}
	}

	pick := 0
	if found && governing.Composite && governing.ChildPriority == ChildPriorityRandom {
		pick = s.pickRandom(requested, len(resolved))
	}

	winner := resolved[pick]
	s.logger.Debug().
		Str("input", inputs[0]).
		Str("model", winner.Model.ID()).
		Int("index", pick).
		Int("viable", len(resolved)).
		Msg("resolved model")

	return &ResolutionResult{
		Model:      winner.Model,
		Parsed:     winner.Parsed,
		Requested:  requested,
		Candidates: resolved,
	}, nil
}

// pickRandom uses the identifier's seed as a plain index when present.
func (s *Selector) pickRandom(requested ParsedIdentifier, n int) int {
	if seed, ok := requested.Config.Seed(); ok {
		m := int64(n)
		return int(((seed % m) + m) % m)
	}
	if v, ok := requested.Config.Get(SeedKey); ok {
		s.logger.Warn().Str("seed", v.String()).Msg("ignoring non-numeric seed")
	}
	return s.intN(n)
}

// expandComposite builds one candidate per child, appending the capabilities
// requested of the composite. Nested composites are not expanded.
func expandComposite(m ModelDescriptor, caps []Capability) []string {
	suffix := ""
	if len(caps) > 0 {
		suffix = ":" + strings.Join(capabilityStrings(caps), ",")
	}
	out := make([]string, 0, len(m.Children))
	for _, child := range m.Children {
		out = append(out, child+suffix)
	}
	return out
}

func capabilityStrings(caps []Capability) []string {
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = string(c)
	}
	return out
}

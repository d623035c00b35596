package llmrouter

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

// plainParser has no aliases and no quirk rules.
func plainParser() *Parser {
	return NewParser(WithAliases(AliasTable{}), WithQuirkRules())
}

func TestParseSegments(t *testing.T) {
	tests := []struct {
		input    string
		provider string
		author   string
		model    string
	}{
		{"gpt-4o", "", "", "gpt-4o"},
		{"openai/gpt-4o", "", "openai", "gpt-4o"},
		{"openrouter/openai/gpt-4o", "openrouter", "openai", "gpt-4o"},
		{"@openrouter/openai/gpt-4o", "openrouter", "openai", "gpt-4o"},
		{"  openai / gpt-4o ", "", "openai", "gpt-4o"},
		{"a//c", "a", "", "c"},
		{"x/y/b/c", "x/y", "b", "c"},
	}

	p := plainParser()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := p.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got.Provider != tt.provider || got.Author != tt.author || got.Model != tt.model {
				t.Errorf("Parse(%q) = %q/%q/%q, want %q/%q/%q",
					tt.input, got.Provider, got.Author, got.Model, tt.provider, tt.author, tt.model)
			}
			if got.Capabilities == nil {
				t.Error("Capabilities should never be nil")
			}
			if got.Config != nil {
				t.Error("Config should be nil without a (...) block")
			}
		})
	}
}

func TestParseCapabilitiesInOrder(t *testing.T) {
	got, err := plainParser().Parse("a/b/c:code,reasoning")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Provider != "a" || got.Author != "b" || got.Model != "c" {
		t.Errorf("unexpected path: %+v", got)
	}
	want := []Capability{"code", "reasoning"}
	if !slices.Equal(got.Capabilities, want) {
		t.Errorf("capabilities = %v, want %v", got.Capabilities, want)
	}

	got, err = plainParser().Parse("m: vision , ,tools,")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []Capability{CapVision, CapTools}; !slices.Equal(got.Capabilities, want) {
		t.Errorf("capabilities = %v, want %v", got.Capabilities, want)
	}
}

func TestParseConfig(t *testing.T) {
	got, err := plainParser().Parse("gpt-4o:reasoning(seed:123,temperature:0.5)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got.Capabilities, []Capability{CapReasoning}) {
		t.Errorf("capabilities = %v", got.Capabilities)
	}
	if got.Config.Len() != 2 {
		t.Fatalf("expected 2 config keys, got %d", got.Config.Len())
	}
	if keys := got.Config.Keys(); !slices.Equal(keys, []string{"seed", "temperature"}) {
		t.Errorf("keys = %v", keys)
	}

	seed, _ := got.Config.Get("seed")
	if n, ok := seed.Number(); !ok || n != 123 {
		t.Errorf("seed = %v (numeric %v), want 123", seed, ok)
	}
	temp, _ := got.Config.Get("temperature")
	if n, ok := temp.Number(); !ok || n != 0.5 {
		t.Errorf("temperature = %v (numeric %v), want 0.5", temp, ok)
	}
	if s, ok := got.Config.Seed(); !ok || s != 123 {
		t.Errorf("Seed() = %d, %v", s, ok)
	}
}

func TestParseConfigValues(t *testing.T) {
	got, err := plainParser().Parse("m(mode: fast ,url:http://x:1,flag, n:-2.5e1,inf:Inf,seed:2,seed:9)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		key     string
		numeric bool
		text    string
	}{
		{"mode", false, "fast"},
		{"url", false, "http://x:1"},
		{"flag", false, ""},
		{"n", true, "-25"},
		{"inf", false, "Inf"},
		{"seed", true, "9"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v, ok := got.Config.Get(tt.key)
			if !ok {
				t.Fatalf("missing key %q", tt.key)
			}
			if v.IsNumber() != tt.numeric || v.String() != tt.text {
				t.Errorf("%s = %q (numeric %v), want %q (numeric %v)", tt.key, v.String(), v.IsNumber(), tt.text, tt.numeric)
			}
		})
	}

	// repeated keys keep their first position
	if keys := got.Config.Keys(); !slices.Equal(keys, []string{"mode", "url", "flag", "n", "inf", "seed"}) {
		t.Errorf("keys = %v", keys)
	}
}

func TestParseEmptyConfigBlock(t *testing.T) {
	got, err := plainParser().Parse("m:code()")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Config != nil {
		t.Errorf("expected nil config for empty block, got %v", got.Config.Map())
	}
	if got.Model != "m" {
		t.Errorf("model = %q", got.Model)
	}
}

func TestParseMalformed(t *testing.T) {
	inputs := []string{"", "   ", "@", ":", "::code", "/", "a/", "a/b/", "()", ":reasoning(seed:1)"}

	p := plainParser()
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := p.Parse(in)
			if !errors.Is(err, ErrMalformedIdentifier) {
				t.Fatalf("Parse(%q) error = %v, want ErrMalformedIdentifier", in, err)
			}
			var me *MalformedIdentifierError
			if !errors.As(err, &me) || me.Input != in {
				t.Errorf("expected MalformedIdentifierError for %q, got %v", in, err)
			}
		})
	}
}

func TestParseRejectsDelimitersInTokens(t *testing.T) {
	tests := []struct {
		input  string
		reason string
	}{
		{"gpt-4o:vision()()", `invalid capability "vision()"`},
		{"(openai/gpt-4o):", `segment "(openai"`},
		{"m:a b", `invalid capability "a b"`},
		{"m:vision:tools", `invalid capability "vision:tools"`},
		{"openai/gpt)4o", `segment "gpt)4o"`},
		{"@@gpt-4o", `segment "@gpt-4o"`},
		{"a(b/c", `segment "a(b"`},
	}

	p := plainParser()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := p.Parse(tt.input)
			var me *MalformedIdentifierError
			if !errors.As(err, &me) {
				t.Fatalf("Parse(%q) error = %v, want MalformedIdentifierError", tt.input, err)
			}
			if me.Input != tt.input || !strings.Contains(me.Reason, tt.reason) {
				t.Errorf("Parse(%q) = %+v, want reason containing %q", tt.input, me, tt.reason)
			}
			if !errors.Is(err, ErrMalformedIdentifier) {
				t.Errorf("error %v does not wrap ErrMalformedIdentifier", err)
			}
		})
	}
}

func TestParseAliases(t *testing.T) {
	p := NewParser(
		WithAliases(MustAliasTable(map[string]string{
			"4o":   "gpt-4o",
			"fast": "@openai/gpt-4o-mini:tools",
		})),
		WithQuirkRules(),
	)

	got, err := p.Parse("4o")
	if err != nil || got.Model != "gpt-4o" {
		t.Errorf("Parse(4o) = %+v, %v", got, err)
	}

	got, err = p.Parse("fast")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Author != "openai" || got.Model != "gpt-4o-mini" || !slices.Equal(got.Capabilities, []Capability{CapTools}) {
		t.Errorf("Parse(fast) = %+v", got)
	}

	// the input is trimmed before the alias lookup
	got, err = p.Parse("  4o\t")
	if err != nil || got.Model != "gpt-4o" {
		t.Errorf("Parse(\"  4o\\t\") = %+v, %v", got, err)
	}

	// only whole strings are aliases
	got, err = p.Parse("4o:vision")
	if err != nil || got.Model != "4o" {
		t.Errorf("Parse(4o:vision) = %+v, %v", got, err)
	}
}

func TestParseDefaultTables(t *testing.T) {
	got, err := Parse("4o")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Model != "gpt-4o" {
		t.Errorf("expected default alias 4o -> gpt-4o, got %q", got.Model)
	}

	got, err = Parse("anthropic/claude-3.7-sonnet:thinking")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Model != "claude-3.7-sonnet-thinking" || !slices.Equal(got.Capabilities, []Capability{CapReasoning}) {
		t.Errorf("quirk not applied: %+v", got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input  string
		withAt string
		noAt   string
	}{
		{"gpt-4o", "@gpt-4o", "gpt-4o"},
		{"@openai/gpt-4o", "@openai/gpt-4o", "openai/gpt-4o"},
		{"a/b/c:code,reasoning", "@a/b/c:code,reasoning", "a/b/c:code,reasoning"},
		{"gpt-4o:reasoning(seed:123,temperature:0.50)", "@gpt-4o:reasoning(seed:123,temperature:0.5)", "gpt-4o:reasoning(seed:123,temperature:0.5)"},
		{"m( b : x , a:1e2 )", "@m(b:x,a:100)", "m(b:x,a:100)"},
		{"a//c", "@a//c", "a//c"},
		{"m:()", "@m", "m"},
	}

	p := plainParser()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			parsed, err := p.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if got := parsed.Format(true); got != tt.withAt {
				t.Errorf("Format(true) = %q, want %q", got, tt.withAt)
			}
			if got := parsed.Format(false); got != tt.noAt {
				t.Errorf("Format(false) = %q, want %q", got, tt.noAt)
			}
			if parsed.String() != tt.withAt {
				t.Errorf("String() = %q, want %q", parsed.String(), tt.withAt)
			}
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	inputs := []string{
		"gpt-4o",
		"@a/b/c:code,reasoning",
		"gpt-4o:reasoning(seed:123,temperature:0.5)",
		" x/y/b/c : t1 , t2 (k:v, n: 007, s:a b)",
		"a//c:vision",
		"m(url:http://x:1)",
		"m(k:a)b)",
		"anthropic/claude-3.7-sonnet:thinking,vision",
		"gpt-4o:vision(a)b:1)",
		"/a/b/c",
		"p//m(k:v ))",
	}

	// default parser, so the quirk rewrite is exercised as well
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first, err := Parse(in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", in, err)
			}
			once := first.Format(true)
			second, err := Parse(once)
			if err != nil {
				t.Fatalf("Parse(%q): %v", once, err)
			}
			if twice := second.Format(true); twice != once {
				t.Errorf("format not idempotent: %q -> %q", once, twice)
			}
		})
	}
}

func FuzzFormatIdempotent(f *testing.F) {
	for _, seed := range []string{
		"gpt-4o",
		"@openrouter/openai/gpt-4o:vision,tools(seed:42,temperature:0.7)",
		"gpt-4o:vision()()",
		"(openai/gpt-4o):",
		"m(k:a)b)",
		"a//c:vision",
		" x/y/b/c : t1 , t2 (k:v, n: 007, s:a b)",
		"m(url:http://x:1,n:1e3,x:NaN,e:)",
	} {
		f.Add(seed)
	}

	p := plainParser()
	f.Fuzz(func(t *testing.T, in string) {
		first, err := p.Parse(in)
		if err != nil {
			return
		}
		once := first.Format(true)
		second, err := p.Parse(once)
		if err != nil {
			t.Fatalf("Parse(%q) of formatted %q: %v", once, in, err)
		}
		if twice := second.Format(true); twice != once {
			t.Errorf("format not idempotent for %q: %q -> %q", in, once, twice)
		}
	})
}

func BenchmarkParse(b *testing.B) {
	p := NewParser()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Parse("openrouter/openai/gpt-4o:vision,tools(seed:42,temperature:0.7)")
	}
}

package llmrouter

import (
	"math"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ConfigValue is a per-call configuration value: a number when the raw text
// parsed cleanly as one, otherwise a string.
type ConfigValue struct {
	num   float64
	str   string
	isNum bool
}

// NumberValue returns a numeric ConfigValue.
func NumberValue(f float64) ConfigValue {
	return ConfigValue{num: f, isNum: true}
}

// StringValue returns a string ConfigValue.
func StringValue(s string) ConfigValue {
	return ConfigValue{str: s}
}

// parseConfigValue coerces raw to a number when it is a finite float.
func parseConfigValue(raw string) ConfigValue {
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return NumberValue(f)
	}
	return StringValue(raw)
}

// IsNumber reports whether the value is numeric.
func (v ConfigValue) IsNumber() bool { return v.isNum }

// Number returns the numeric value and whether the value is numeric.
func (v ConfigValue) Number() (float64, bool) { return v.num, v.isNum }

// String formats the value the way it appears in an identifier.
func (v ConfigValue) String() string {
	if v.isNum {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

// Any returns the value as float64 or string.
func (v ConfigValue) Any() any {
	if v.isNum {
		return v.num
	}
	return v.str
}

// SeedKey is the configuration key consulted by the random tie-break.
const SeedKey = "seed"

// SystemConfig holds the key:value pairs of an identifier's (...) block in
// insertion order.
type SystemConfig struct {
	pairs *orderedmap.OrderedMap[string, ConfigValue]
}

func newSystemConfig() *SystemConfig {
	return &SystemConfig{pairs: orderedmap.New[string, ConfigValue]()}
}

// set keeps the first position of a repeated key and the last value.
func (c *SystemConfig) set(key string, v ConfigValue) {
	c.pairs.Set(key, v)
}

// Get returns the value for key.
func (c *SystemConfig) Get(key string) (ConfigValue, bool) {
	if c == nil {
		return ConfigValue{}, false
	}
	return c.pairs.Get(key)
}

// Len returns the number of keys.
func (c *SystemConfig) Len() int {
	if c == nil {
		return 0
	}
	return c.pairs.Len()
}

// Keys returns the keys in insertion order.
func (c *SystemConfig) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, c.pairs.Len())
	for pair := c.pairs.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Map returns the configuration as plain float64/string values, suitable for
// forwarding as generation parameters.
func (c *SystemConfig) Map() map[string]any {
	if c == nil {
		return nil
	}
	out := make(map[string]any, c.pairs.Len())
	for pair := c.pairs.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value.Any()
	}
	return out
}

// Seed returns the integer part of a numeric seed value.
func (c *SystemConfig) Seed() (int64, bool) {
	v, ok := c.Get(SeedKey)
	if !ok {
		return 0, false
	}
	f, ok := v.Number()
	if !ok {
		return 0, false
	}
	return int64(f), true
}

func (c *SystemConfig) format(b *strings.Builder) {
	b.WriteByte('(')
	first := true
	for pair := c.pairs.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(pair.Key)
		b.WriteByte(':')
		b.WriteString(pair.Value.String())
	}
	b.WriteByte(')')
}

// ParsedIdentifier is the structured form of a model identifier.
// Values returned by the parser are not modified afterwards.
type ParsedIdentifier struct {
	Provider     string
	Author       string
	Model        string
	Capabilities []Capability
	// Config is nil when the identifier had no (...) block.
	Config *SystemConfig
}

// RequiredCapabilities returns the requested capabilities as a set.
func (p ParsedIdentifier) RequiredCapabilities() CapabilitySet {
	return NewCapabilitySet(p.Capabilities...)
}

// Format writes the canonical identifier:
// [@][provider/]author/model[:cap,cap][(k:v,k:v)].
func (p ParsedIdentifier) Format(includeAtMarker bool) string {
	var b strings.Builder
	if includeAtMarker {
		b.WriteByte('@')
	}
	switch {
	case p.Provider != "":
		b.WriteString(p.Provider)
		b.WriteByte('/')
		b.WriteString(p.Author)
		b.WriteByte('/')
	case p.Author != "":
		b.WriteString(p.Author)
		b.WriteByte('/')
	}
	b.WriteString(p.Model)
	if len(p.Capabilities) > 0 {
		b.WriteByte(':')
		for i, c := range p.Capabilities {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(string(c))
		}
	}
	if p.Config.Len() > 0 {
		p.Config.format(&b)
	}
	return b.String()
}

// String returns Format(true).
func (p ParsedIdentifier) String() string {
	return p.Format(true)
}

package llmrouter

import (
	"slices"
	"strings"
)

// QuirkRule folds a vendor-specific capability token into the canonical
// vocabulary and rewrites the model name to the vendor's variant.
//
// A rule fires when the parsed model starts with ModelPrefix and the
// capabilities contain VendorToken or CanonicalCapability. It then sets the
// capabilities to [CanonicalCapability] and the model to
// ModelPrefix+ModelSuffix.
type QuirkRule struct {
	ModelPrefix         string     `yaml:"model_prefix"`
	VendorToken         Capability `yaml:"vendor_token"`
	CanonicalCapability Capability `yaml:"capability"`
	ModelSuffix         string     `yaml:"model_suffix"`
}

func (r QuirkRule) applies(p ParsedIdentifier) bool {
	if r.ModelPrefix == "" || !strings.HasPrefix(p.Model, r.ModelPrefix) {
		return false
	}
	return slices.Contains(p.Capabilities, r.VendorToken) ||
		slices.Contains(p.Capabilities, r.CanonicalCapability)
}

// ApplyQuirks evaluates rules in order against p and returns the rewritten
// identifier. Every matching rule fires; later rules see earlier rewrites.
func ApplyQuirks(p ParsedIdentifier, rules []QuirkRule) ParsedIdentifier {
	for _, r := range rules {
		if !r.applies(p) {
			continue
		}
		p.Capabilities = []Capability{r.CanonicalCapability}
		p.Model = r.ModelPrefix + r.ModelSuffix
	}
	return p
}

package statement

import (
	"strings"

	"github.com/cleared-dev/statements2csv/internal/source"
)

// IssuerRule selects flavors for documents whose path names an issuer.
type IssuerRule struct {
	Patterns []string
	Flavors  []source.Flavor
}

// Policy decides which flavors to try for a document when none is
// requested explicitly.
type Policy struct {
	Default []source.Flavor
	Issuers []IssuerRule
}

// DefaultPolicy tries stream everywhere, plus network for issuers whose
// statements often only detect with ruling lines.
func DefaultPolicy() Policy {
	both := []source.Flavor{source.Stream, source.Network}
	return Policy{
		Default: []source.Flavor{source.Stream},
		Issuers: []IssuerRule{
			{Patterns: []string{"wellsfargo", "wells_fargo", "wells fargo", "wells-fargo"}, Flavors: both},
			{Patterns: []string{"capitalone", "capital_one", "capital one", "capital-one"}, Flavors: both},
		},
	}
}

// Candidates returns the flavors to try for path, in order. The first
// issuer rule with a pattern occurring in path wins.
func (p Policy) Candidates(path string) []source.Flavor {
	lower := strings.ToLower(path)
	for _, rule := range p.Issuers {
		for _, pattern := range rule.Patterns {
			if pattern != "" && strings.Contains(lower, strings.ToLower(pattern)) && len(rule.Flavors) > 0 {
				return rule.Flavors
			}
		}
	}
	if len(p.Default) == 0 {
		return []source.Flavor{source.Stream}
	}
	return p.Default
}

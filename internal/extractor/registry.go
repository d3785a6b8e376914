package extractor

import (
	"strings"

	"github.com/cleared-dev/statements2csv/internal/model"
)

// Registry holds extractors in priority order.
type Registry struct {
	extractors []Extractor
	byName     map[string]int
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register appends an extractor. Panics on duplicate name.
func (r *Registry) Register(x Extractor) {
	key := strings.ToLower(x.Name)
	if _, ok := r.byName[key]; ok {
		panic("duplicate extractor name: " + key)
	}
	r.byName[key] = len(r.extractors)
	r.extractors = append(r.extractors, x)
}

// Get returns the extractor registered under name.
func (r *Registry) Get(name string) (Extractor, bool) {
	i, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return Extractor{}, false
	}
	return r.extractors[i], true
}

// All returns every extractor in priority order.
func (r *Registry) All() []Extractor {
	out := make([]Extractor, len(r.extractors))
	copy(out, r.extractors)
	return out
}

// Match returns every extractor that recognizes raw, in priority order.
func (r *Registry) Match(raw model.RawTable) []Extractor {
	var out []Extractor
	for _, x := range r.extractors {
		if x.Match(raw) {
			out = append(out, x)
		}
	}
	return out
}

// DefaultRegistry returns a registry with all built-in extractors.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(AppleCard)
	r.Register(BankOfAmerica)
	r.Register(CapitalOne)
	r.Register(Chase)
	r.Register(WellsFargo)
	return r
}

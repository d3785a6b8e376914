// Package source detects the raw tables of a statement document.
package source

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/statements2csv/internal/model"
)

// Flavor selects a table detection strategy.
type Flavor string

const (
	// Stream infers cells from whitespace alignment of the text.
	Stream Flavor = "stream"
	// Network infers cells from the ruling lines drawn on the page.
	Network Flavor = "network"
)

// Flavors lists every supported flavor.
var Flavors = []Flavor{Stream, Network}

// ParseFlavor returns the flavor named s, ignoring case.
func ParseFlavor(s string) (Flavor, error) {
	f := Flavor(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Flavors {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown flavor %q (want stream or network)", s)
}

// Source returns the tables of a document in document order.
type Source interface {
	DetectTables(path string, flavor Flavor) ([]model.RawTable, error)
}

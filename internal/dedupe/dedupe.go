// Package dedupe drops tables that a document renders more than once.
//
// Statement PDFs often repeat a table, or print a partial version of it
// before the complete one. Only consecutive tables are compared.
package dedupe

import (
	"github.com/cleared-dev/statements2csv/internal/model"
)

// Decision is the outcome of comparing a table with the one kept before it.
type Decision int

const (
	// Distinct tables are both kept.
	Distinct Decision = iota
	// Duplicate means next is identical to prev and is dropped.
	Duplicate
	// Supersedes means next contains every row of prev and replaces it.
	Supersedes
)

func (d Decision) String() string {
	switch d {
	case Duplicate:
		return "duplicate"
	case Supersedes:
		return "supersedes"
	default:
		return "distinct"
	}
}

// Decide compares next with the previously kept table prev.
func Decide(prev, next *model.Extraction) Decision {
	if prev == nil || next == nil {
		return Distinct
	}
	if prev.Equal(next) {
		return Duplicate
	}
	if containedOnce(prev, next) {
		return Supersedes
	}
	return Distinct
}

// containedOnce reports whether every row of prev matches exactly one row of
// next under the same column names.
func containedOnce(prev, next *model.Extraction) bool {
	if len(prev.ExtraColumns) != len(next.ExtraColumns) {
		return false
	}
	for i := range prev.ExtraColumns {
		if prev.ExtraColumns[i] != next.ExtraColumns[i] {
			return false
		}
	}
	for _, p := range prev.Rows {
		n := 0
		for _, q := range next.Rows {
			if p.Equal(q) {
				n++
			}
		}
		if n != 1 {
			return false
		}
	}
	return true
}

// Run accumulates the distinct tables of one document in order.
type Run struct {
	kept []*model.Extraction
}

// Add offers ext to the run and reports what was done with it.
func (r *Run) Add(ext *model.Extraction) Decision {
	var last *model.Extraction
	if len(r.kept) > 0 {
		last = r.kept[len(r.kept)-1]
	}

	d := Decide(last, ext)
	switch d {
	case Duplicate:
	case Supersedes:
		r.kept[len(r.kept)-1] = ext
	default:
		r.kept = append(r.kept, ext)
	}
	return d
}

// Kept returns the tables kept so far.
func (r *Run) Kept() []*model.Extraction {
	return r.kept
}

// Rows returns the total number of rows across kept tables.
func (r *Run) Rows() int {
	n := 0
	for _, ext := range r.kept {
		n += ext.Len()
	}
	return n
}

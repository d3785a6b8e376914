// Package merge orders the tables extracted from many documents into one
// roughly chronological sequence.
package merge

import (
	"path/filepath"
	"sort"

	"github.com/cleared-dev/statements2csv/internal/model"
)

// FileExtraction is one table together with the document it came from.
type FileExtraction struct {
	Path       string // absolute, symlinks resolved when possible
	Extraction *model.Extraction
}

// New pairs ext with the resolved form of path.
func New(path string, ext *model.Extraction) FileExtraction {
	return FileExtraction{Path: resolve(path), Extraction: ext}
}

func resolve(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

// Sort orders extractions by first transaction date, then by path.
// Rows within a table keep their order.
func Sort(exts []FileExtraction) {
	sort.SliceStable(exts, func(i, j int) bool {
		a, b := exts[i].Extraction.DateStart(), exts[j].Extraction.DateStart()
		if !a.Equal(b) {
			return a.Before(b)
		}
		return exts[i].Path < exts[j].Path
	})
}

// Flatten concatenates per-document results and sorts them.
func Flatten(docs [][]FileExtraction) []FileExtraction {
	var out []FileExtraction
	for _, doc := range docs {
		out = append(out, doc...)
	}
	Sort(out)
	return out
}

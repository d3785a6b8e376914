// Package classify decides which bank layout, if any, a detected table
// follows and normalizes it with that layout's extractor.
package classify

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cleared-dev/statements2csv/internal/dates"
	"github.com/cleared-dev/statements2csv/internal/extractor"
	"github.com/cleared-dev/statements2csv/internal/model"
)

// Match is a table recognized and normalized by an extractor.
type Match struct {
	Extractor  extractor.Extractor
	Extraction *model.Extraction
	Candidates []string // every extractor that recognized the table
}

// Engine classifies tables against a registry.
type Engine struct {
	registry *extractor.Registry
	resolver *dates.Resolver
	logger   *log.Logger
}

// New creates an Engine. A nil logger discards output.
func New(registry *extractor.Registry, resolver *dates.Resolver, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{registry: registry, resolver: resolver, logger: logger}
}

// Classify normalizes raw with the first extractor that recognizes it. It
// returns nil when no extractor does or when nothing survives filtering.
// Shape mismatches come back as extractor.ValidationError.
func (e *Engine) Classify(year int, raw model.RawTable) (*Match, error) {
	matched := e.registry.Match(raw)
	if len(matched) == 0 {
		e.logger.Debug("no extractor matched table", "rows", raw.NumRows(), "cols", raw.NumCols())
		return nil, nil
	}

	names := make([]string, len(matched))
	for i, x := range matched {
		names[i] = x.Name
	}
	if len(matched) > 1 {
		e.logger.Warn("table matched several extractors, using first", "extractors", strings.Join(names, ","))
	}

	x := matched[0]
	ext, err := x.Extract(year, raw, e.resolver)
	if err != nil {
		return nil, err
	}
	if ext.Len() == 0 {
		return nil, nil
	}

	e.logger.Info("extracted table", "extractor", x.Name, "rows", ext.Len())
	return &Match{Extractor: x, Extraction: ext, Candidates: names}, nil
}

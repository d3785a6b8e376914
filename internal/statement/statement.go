// Package statement extracts the transaction tables of one statement
// document, choosing the detection flavor that finds the most rows.
package statement

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/cleared-dev/statements2csv/internal/classify"
	"github.com/cleared-dev/statements2csv/internal/dates"
	"github.com/cleared-dev/statements2csv/internal/dedupe"
	"github.com/cleared-dev/statements2csv/internal/extractor"
	"github.com/cleared-dev/statements2csv/internal/model"
	"github.com/cleared-dev/statements2csv/internal/source"
)

// StructureError reports a document whose recognized tables never fit
// their extractor under any flavor tried.
type StructureError struct {
	Path string
	Err  error // first validation error seen
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s: no recognized table has the expected columns: %v", e.Path, e.Err)
}

func (e *StructureError) Unwrap() error { return e.Err }

// Processor extracts statement documents.
type Processor struct {
	Source   source.Source
	Registry *extractor.Registry
	Resolver *dates.Resolver
	Policy   Policy
	Logger   *log.Logger
}

// attempt is the outcome of one flavor on one document.
type attempt struct {
	flavor   source.Flavor
	run      dedupe.Run
	firstErr error
}

// Extract returns the distinct transaction tables of the document at path
// in document order. An empty flavor tries the policy's candidates and keeps
// the one with the most rows.
func (p *Processor) Extract(path string, flavor source.Flavor) ([]*model.Extraction, error) {
	year, err := ParseYear(path)
	if err != nil {
		return nil, err
	}

	logger := p.logger().With("file", path)
	engine := classify.New(p.registry(), p.Resolver, logger)

	candidates := p.Policy.Candidates(path)
	if flavor != "" {
		candidates = []source.Flavor{flavor}
	}

	var best *attempt
	var firstErr error
	allInvalid := true
	anyKept := false
	for _, f := range candidates {
		a, err := p.try(engine, year, path, f, logger)
		if err != nil {
			return nil, err
		}
		if a.firstErr == nil {
			allInvalid = false
		} else if firstErr == nil {
			firstErr = a.firstErr
		}
		if a.run.Rows() > 0 {
			anyKept = true
		}
		if best == nil || a.run.Rows() > best.run.Rows() {
			best = a
		}
	}

	if allInvalid && !anyKept && firstErr != nil {
		return nil, &StructureError{Path: path, Err: firstErr}
	}
	if len(candidates) > 1 {
		logger.Info("chose flavor", "flavor", best.flavor, "rows", best.run.Rows())
	}
	return best.run.Kept(), nil
}

func (p *Processor) try(engine *classify.Engine, year int, path string, f source.Flavor, logger *log.Logger) (*attempt, error) {
	tables, err := p.Source.DetectTables(path, f)
	if err != nil {
		return nil, fmt.Errorf("detecting tables in %s with %s flavor: %w", path, f, err)
	}

	a := &attempt{flavor: f}
	for _, raw := range tables {
		m, err := engine.Classify(year, raw)
		if err != nil {
			var ve extractor.ValidationError
			if !errors.As(err, &ve) {
				return nil, fmt.Errorf("classifying table in %s: %w", path, err)
			}
			logger.Debug("table does not fit extractor", "flavor", f, "err", err)
			if a.firstErr == nil {
				a.firstErr = err
			}
			continue
		}
		if m == nil {
			continue
		}
		if a.run.Add(m.Extraction) == dedupe.Duplicate {
			logger.Info("skipping duplicate table", "extractor", m.Extractor.Name)
		}
	}
	return a, nil
}

func (p *Processor) registry() *extractor.Registry {
	if p.Registry == nil {
		return extractor.DefaultRegistry()
	}
	return p.Registry
}

func (p *Processor) logger() *log.Logger {
	if p.Logger == nil {
		return log.New(io.Discard)
	}
	return p.Logger
}

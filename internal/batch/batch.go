// Package batch runs per-document extraction across a bounded pool of
// goroutines.
package batch

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/statements2csv/internal/model"
)

// Result is the outcome for one document.
type Result struct {
	Path        string
	Extractions []*model.Extraction
	Err         error
}

// DefaultLimit leaves half the CPUs free, with a floor of one worker.
func DefaultLimit() int {
	if n := runtime.NumCPU() / 2; n > 1 {
		return n
	}
	return 1
}

// Run calls fn for every path with at most limit calls in flight. Results
// are in input order. A failing or panicking document does not stop the
// others.
func Run(paths []string, limit int, fn func(path string) ([]*model.Extraction, error)) []Result {
	results := make([]Result, len(paths))
	if limit < 1 {
		limit = DefaultLimit()
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = runOne(path, fn)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func runOne(path string, fn func(string) ([]*model.Extraction, error)) (res Result) {
	res.Path = path
	defer func() {
		if r := recover(); r != nil {
			res.Extractions = nil
			res.Err = fmt.Errorf("extracting %s: panic: %v", path, r)
		}
	}()
	res.Extractions, res.Err = fn(path)
	return res
}

// Package grep searches previously produced transaction CSV and reshapes
// the matches for pasting into a spreadsheet.
package grep

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/cleared-dev/statements2csv/internal/model"
)

const dateFormat = "2006-01-02"

// Record is one row of statements2csv output.
type Record struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
}

// Options select the records to print.
type Options struct {
	Years   []int // empty means every year
	Pattern *regexp.Regexp

	// Fuzzy, when set, replaces Pattern: its characters must appear in order
	// in the description, ignoring case.
	Fuzzy string
}

// LastYear returns the calendar year before now.
func LastYear(now time.Time) []int {
	return []int{now.Year() - 1}
}

// Read decodes produced CSV. Empty input yields no records.
func Read(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var recs []Record
	if err := gocsv.UnmarshalBytes(data, &recs); err != nil {
		return nil, fmt.Errorf("parsing transactions CSV: %w", err)
	}
	return recs, nil
}

// Match reports whether rec falls in one of the years and matches the fuzzy
// term or, without one, the pattern.
func (o Options) Match(rec Record) bool {
	if len(o.Years) > 0 {
		d, err := time.Parse(dateFormat, rec.Date)
		if err != nil || !containsYear(o.Years, d.Year()) {
			return false
		}
	}
	if o.Fuzzy != "" {
		return fuzzy.MatchFold(o.Fuzzy, rec.Description)
	}
	if o.Pattern == nil {
		return true
	}
	return o.Pattern.MatchString(strings.Join([]string{rec.Date, rec.Description, rec.Amount}, ","))
}

// Format renders rec tab-separated with a plain decimal amount.
func Format(rec Record) string {
	amount := rec.Amount
	if d, err := model.ParseAmount(rec.Amount); err == nil {
		amount = d.StringFixed(2)
	}
	return strings.Join([]string{rec.Date, rec.Description, amount}, "\t")
}

// Filter copies the matching records of r to w and returns how many matched.
func Filter(r io.Reader, w io.Writer, opts Options) (int, error) {
	recs, err := Read(r)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, rec := range recs {
		if !opts.Match(rec) {
			continue
		}
		if _, err := fmt.Fprintln(w, Format(rec)); err != nil {
			return n, fmt.Errorf("writing match: %w", err)
		}
		n++
	}
	return n, nil
}

func containsYear(years []int, y int) bool {
	for _, year := range years {
		if year == y {
			return true
		}
	}
	return false
}

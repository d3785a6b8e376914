// Package extractor recognizes the transaction tables of each supported
// bank and normalizes them to Date, Description and Amount columns.
package extractor

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/cleared-dev/statements2csv/internal/dates"
	"github.com/cleared-dev/statements2csv/internal/model"
)

// Extractor identifies one bank's transaction tables and declares where
// their columns are. Detection looks at a single table only.
type Extractor struct {
	Name string

	// Match reports whether the table belongs to this bank.
	Match func(raw model.RawTable) bool

	// Columns maps raw column indexes to semantic column names. Every
	// layout declares at least Date, Description and Amount.
	Columns func(raw model.RawTable) map[int]string

	// Unwanted selects normalized rows to drop. Nil means DefaultUnwanted.
	Unwanted func(t model.Transaction) bool
}

// String returns the extractor name.
func (x Extractor) String() string { return x.Name }

// ValidationError reports a table that an extractor recognized but whose
// shape does not fit the extractor's declared columns.
type ValidationError struct {
	Extractor string
	Declared  int
	Present   int
	Missing   string // semantic column absent from the declaration
}

func (e ValidationError) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("extractor %s: no %s column declared", e.Extractor, e.Missing)
	}
	return fmt.Sprintf("extractor %s: %d columns declared, %d present in table", e.Extractor, e.Declared, e.Present)
}

// DefaultUnwanted drops rows with no date, an empty amount, or an amount
// that is only letters (a stray label such as "Total").
func DefaultUnwanted(t model.Transaction) bool {
	return t.Date.IsZero() || t.Amount == "" || isAlpha(t.Amount)
}

// Extract projects raw onto the declared columns, resolves dates in year and
// drops unwanted rows. The raw table is not modified.
func (x Extractor) Extract(year int, raw model.RawTable, resolver *dates.Resolver) (*model.Extraction, error) {
	columns := x.Columns(raw)

	indexes := make([]int, 0, len(columns))
	for idx := range columns {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	present := 0
	for _, idx := range indexes {
		if idx >= 0 && idx < raw.NumCols() {
			present++
		}
	}
	if present != len(columns) {
		return nil, ValidationError{Extractor: x.Name, Declared: len(columns), Present: present}
	}

	dateCol, descCol, amountCol := -1, -1, -1
	var extraCols []int
	var extraNames []string
	for _, idx := range indexes {
		switch columns[idx] {
		case model.ColumnDate:
			dateCol = idx
		case model.ColumnDescription:
			descCol = idx
		case model.ColumnAmount:
			amountCol = idx
		default:
			extraCols = append(extraCols, idx)
			extraNames = append(extraNames, columns[idx])
		}
	}
	for name, idx := range map[string]int{
		model.ColumnDate:        dateCol,
		model.ColumnDescription: descCol,
		model.ColumnAmount:      amountCol,
	} {
		if idx < 0 {
			return nil, ValidationError{Extractor: x.Name, Declared: len(columns), Present: present, Missing: name}
		}
	}

	unwanted := x.Unwanted
	if unwanted == nil {
		unwanted = DefaultUnwanted
	}

	resolved := resolver.ResolveColumn(year, raw.Column(dateCol))
	rows := make([]model.Transaction, 0, raw.NumRows())
	for r := 0; r < raw.NumRows(); r++ {
		t := model.Transaction{
			Date:        resolved[r],
			Description: raw.Cell(r, descCol),
			Amount:      raw.Cell(r, amountCol),
		}
		if len(extraCols) > 0 {
			t.Extra = make([]string, len(extraCols))
			for i, c := range extraCols {
				t.Extra[i] = raw.Cell(r, c)
			}
		}
		if unwanted(t) {
			continue
		}
		rows = append(rows, t)
	}

	return &model.Extraction{Bank: x.Name, ExtraColumns: extraNames, Rows: rows}, nil
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func containsFolded(cells []string, want string) bool {
	return indexFolded(cells, want, false) >= 0
}

func containsFoldedTrimmed(cells []string, want string) bool {
	return indexFolded(cells, want, true) >= 0
}

// indexFolded returns the index of the first cell that equals want after
// case folding, or -1. A cases.Caser keeps state, so each scan owns one.
func indexFolded(cells []string, want string, trim bool) int {
	caser := cases.Fold()
	for i, c := range cells {
		if trim {
			c = strings.TrimSpace(c)
		}
		if caser.String(c) == want {
			return i
		}
	}
	return -1
}

// Package csvout renders merged extractions as one CSV document.
package csvout

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cleared-dev/statements2csv/internal/merge"
	"github.com/cleared-dev/statements2csv/internal/model"
)

// DateFormat is the layout of the Date column.
const DateFormat = "2006-01-02"

const (
	colDate   = 0
	colDesc   = 1
	colAmount = 2
	numFixed  = 3
)

// Columns returns the header for exts: the fixed columns followed by every
// extra column in first-seen order.
func Columns(exts []merge.FileExtraction) []string {
	cols := []string{model.ColumnDate, model.ColumnDescription, model.ColumnAmount}
	seen := make(map[string]bool)
	for _, fe := range exts {
		for _, name := range fe.Extraction.ExtraColumns {
			if !seen[name] {
				seen[name] = true
				cols = append(cols, name)
			}
		}
	}
	return cols
}

// Write writes one header row and then every row of exts in order.
func Write(w io.Writer, exts []merge.FileExtraction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := Columns(exts)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	line := 2
	for _, fe := range exts {
		for _, t := range fe.Extraction.Rows {
			if err := cw.Write(MarshalRow(t, fe.Extraction.ExtraColumns, index, len(header))); err != nil {
				return fmt.Errorf("writing row %d: %w", line, err)
			}
			line++
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRow converts t to a CSV record of width columns. index maps column
// names to record positions.
func MarshalRow(t model.Transaction, extra []string, index map[string]int, width int) []string {
	row := make([]string, width)
	if !t.Date.IsZero() {
		row[colDate] = t.Date.Format(DateFormat)
	}
	row[colDesc] = t.Description
	row[colAmount] = t.Amount
	for i, name := range extra {
		if pos, ok := index[name]; ok && pos >= numFixed && i < len(t.Extra) {
			row[pos] = t.Extra[i]
		}
	}
	return row
}

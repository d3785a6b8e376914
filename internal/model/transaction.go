package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Semantic column names shared by every bank layout.
const (
	ColumnDate        = "Date"
	ColumnDescription = "Description"
	ColumnAmount      = "Amount"
)

// Transaction is one normalized statement row.
type Transaction struct {
	Date        time.Time // zero when the date cell did not parse
	Description string
	Amount      string   // as printed on the statement
	Extra       []string // aligned with Extraction.ExtraColumns
}

// Equal reports whether two rows hold the same cells.
func (t Transaction) Equal(o Transaction) bool {
	if !t.Date.Equal(o.Date) || t.Description != o.Description || t.Amount != o.Amount {
		return false
	}
	return equalStrings(t.Extra, o.Extra)
}

// Extraction is the transaction table normalized from one raw table.
type Extraction struct {
	Bank         string
	ExtraColumns []string
	Rows         []Transaction
}

// Columns returns the column names in output order.
func (e *Extraction) Columns() []string {
	cols := []string{ColumnDate, ColumnDescription, ColumnAmount}
	return append(cols, e.ExtraColumns...)
}

// Len returns the number of rows.
func (e *Extraction) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Rows)
}

// DateStart returns the earliest date in the table.
func (e *Extraction) DateStart() time.Time {
	var start time.Time
	for i, row := range e.Rows {
		if i == 0 || row.Date.Before(start) {
			start = row.Date
		}
	}
	return start
}

// Equal reports whether both tables are cell-for-cell identical. The bank
// name is not part of the table.
func (e *Extraction) Equal(o *Extraction) bool {
	if e == nil || o == nil {
		return e == o
	}
	if !equalStrings(e.ExtraColumns, o.ExtraColumns) || len(e.Rows) != len(o.Rows) {
		return false
	}
	for i := range e.Rows {
		if !e.Rows[i].Equal(o.Rows[i]) {
			return false
		}
	}
	return true
}

// Total sums every amount that parses. Unparseable amounts are skipped.
func (e *Extraction) Total() decimal.Decimal {
	total := decimal.Zero
	for _, row := range e.Rows {
		if amt, err := ParseAmount(row.Amount); err == nil {
			total = total.Add(amt)
		}
	}
	return total
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

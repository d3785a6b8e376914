package model

import "strings"

// RawTable is a rectangular grid of cell text as detected in a document,
// before any interpretation. Columns are positional only.
type RawTable struct {
	cells [][]string
	cols  int
}

// NewRawTable copies rows into a RawTable, padding short rows with "".
func NewRawTable(rows [][]string) RawTable {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, cols)
		copy(cells[i], row)
	}
	return RawTable{cells: cells, cols: cols}
}

// NumRows returns the number of rows.
func (t RawTable) NumRows() int { return len(t.cells) }

// NumCols returns the number of columns.
func (t RawTable) NumCols() int { return t.cols }

// Cell returns the text at (row, col), or "" when out of range.
func (t RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t.cells) || col < 0 || col >= t.cols {
		return ""
	}
	return t.cells[row][col]
}

// Row returns a copy of row r.
func (t RawTable) Row(r int) []string {
	if r < 0 || r >= len(t.cells) {
		return nil
	}
	out := make([]string, t.cols)
	copy(out, t.cells[r])
	return out
}

// Column returns a copy of column c. Negative indices count from the end,
// so -1 is the last column.
func (t RawTable) Column(c int) []string {
	if c < 0 {
		c += t.cols
	}
	if c < 0 || c >= t.cols {
		return nil
	}
	out := make([]string, len(t.cells))
	for i, row := range t.cells {
		out[i] = row[c]
	}
	return out
}

// String renders the grid as plain text: cells separated by two spaces,
// rows by newlines.
func (t RawTable) String() string {
	var sb strings.Builder
	for i, row := range t.cells {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Join(row, "  "))
	}
	return sb.String()
}

// Package dataset provides the in-memory tabular structure the ETL stages
// pass between each other. A Table is a header plus string rows in input
// order; an empty cell is the null marker, matching how the raw CSV files
// encode missing values.
package dataset

import "fmt"

// Table holds one raw or cleaned dataset. Row order is the input order and
// is significant: every "keep first" deduplication rule downstream resolves
// against it.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewTable creates an empty table with the given column header.
func NewTable(columns []string) *Table {
	t := &Table{Columns: columns}
	t.buildIndex()
	return t
}

func (t *Table) buildIndex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		t.index[c] = i
	}
}

// Append adds a row. Short rows are padded with empty cells so positional
// access stays safe for ragged CSV input.
func (t *Table) Append(row []string) {
	if len(row) < len(t.Columns) {
		padded := make([]string, len(t.Columns))
		copy(padded, row)
		row = padded
	}
	t.Rows = append(t.Rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Col returns the positional index of a named column.
func (t *Table) Col(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Cell returns the value at (row, column name), or "" when the column is
// absent from the header.
func (t *Table) Cell(row int, name string) string {
	i, ok := t.index[name]
	if !ok {
		return ""
	}
	return t.Rows[row][i]
}

// RequireColumns verifies that every named column exists in the header.
// A missing column is a structural failure of the source schema, not a
// data-quality issue, so callers treat the returned error as fatal.
func (t *Table) RequireColumns(names ...string) error {
	for _, name := range names {
		if _, ok := t.index[name]; !ok {
			return fmt.Errorf("required column %q missing from schema %v", name, t.Columns)
		}
	}
	return nil
}

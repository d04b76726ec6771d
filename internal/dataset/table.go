// Package dataset defines the canonical typed table produced by ingestion
// and consumed by every data-quality check. A table is written once by its
// reader and treated as read-only afterwards; checks that need a transformed
// view derive a private copy via Filter, Head, or Select.
package dataset

import "strings"

// Row maps lower-cased column names to typed cell values.
type Row map[string]Value

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered, row-oriented dataset with typed cells.
// Column names are normalized to lower case at construction.
type Table struct {
	cols []string
	rows []Row
}

// New creates an empty table with the given column order.
// Names are lower-cased; duplicates keep their first position.
func New(columns []string) *Table {
	cols := make([]string, 0, len(columns))
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		name := strings.ToLower(strings.TrimSpace(c))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		cols = append(cols, name)
	}
	return &Table{cols: cols}
}

// Columns returns the column names in file order.
// Callers must not modify the returned slice.
func (t *Table) Columns() []string { return t.cols }

// NumRows returns the row count.
func (t *Table) NumRows() int { return len(t.rows) }

// NumCols returns the column count.
func (t *Table) NumCols() int { return len(t.cols) }

// HasColumn reports whether the table carries the column (case-insensitive).
func (t *Table) HasColumn(name string) bool {
	name = strings.ToLower(name)
	for _, c := range t.cols {
		if c == name {
			return true
		}
	}
	return false
}

// AppendRow adds a row during construction. Cells for columns the table does
// not carry are dropped; absent cells read as missing.
func (t *Table) AppendRow(r Row) {
	row := make(Row, len(t.cols))
	for _, c := range t.cols {
		if v, ok := r[c]; ok {
			row[c] = v
		}
	}
	t.rows = append(t.rows, row)
}

// Row returns the i-th row. Callers must not modify it; derive a copy with
// Clone when a transformed view is needed.
func (t *Table) Row(i int) Row { return t.rows[i] }

// Value returns the cell at row i, column name. Absent cells are missing.
func (t *Table) Value(i int, name string) Value {
	v, ok := t.rows[i][strings.ToLower(name)]
	if !ok {
		return NA()
	}
	return v
}

// NormalizeMissing rewrites every empty-string cell to the missing marker.
// It runs once at the end of ingestion and is idempotent.
func (t *Table) NormalizeMissing() {
	for _, row := range t.rows {
		for k, v := range row {
			if v.Kind() == KindString && strings.TrimSpace(v.Str()) == "" {
				row[k] = NA()
			}
		}
	}
}

// Filter returns a new table containing copies of the rows the predicate
// accepts. The receiver is left untouched.
func (t *Table) Filter(pred func(Row) bool) *Table {
	out := &Table{cols: t.cols}
	for _, row := range t.rows {
		if pred(row) {
			out.rows = append(out.rows, row.Clone())
		}
	}
	return out
}

// Head returns a new table with copies of at most n leading rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	out := &Table{cols: t.cols}
	for _, row := range t.rows[:n] {
		out.rows = append(out.rows, row.Clone())
	}
	return out
}

// Select returns a new table restricted to the named columns, preserving row
// order. Unknown names are ignored.
func (t *Table) Select(names ...string) *Table {
	keep := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(n)
		if t.HasColumn(n) {
			keep = append(keep, n)
		}
	}
	out := &Table{cols: keep}
	for _, row := range t.rows {
		nr := make(Row, len(keep))
		for _, c := range keep {
			if v, ok := row[c]; ok {
				nr[c] = v
			}
		}
		out.rows = append(out.rows, nr)
	}
	return out
}

package grid

import (
	"context"

	"github.com/ajitpratap0/sheetsync/pkg/errors"
)

// Table is the in-memory representation of a grid's contents at one point in
// time: an ordered header plus ordered data rows. Rows may have fewer cells
// than the header; out-of-range cells read as missing values, never as an
// error. Duplicate header names are undefined behavior.
//
// A Table is never assumed to equal the remote grid's state except immediately
// after Load.
type Table struct {
	Header []string
	Rows   [][]string
}

// Load materializes a Store into a Table. The first row becomes the header,
// every subsequent row a data row.
func Load(ctx context.Context, store Store) (*Table, error) {
	rows, err := store.ReadAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to read grid")
	}

	t := &Table{}
	if len(rows) > 0 {
		t.Header = rows[0]
		t.Rows = rows[1:]
	}
	return t, nil
}

// ColumnIndex returns the zero-based index of the named header column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// Cell returns the value at the given zero-based data row and column, or the
// empty string when the row is too short to reach the column.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// SetCell writes value at the given zero-based data row and column, extending
// a short row with empty cells as needed.
func (t *Table) SetCell(row, col int, value string) {
	r := t.Rows[row]
	for len(r) <= col {
		r = append(r, "")
	}
	r[col] = value
	t.Rows[row] = r
}

// Column returns the values of the given zero-based column for every data row
// in order, reading missing cells as empty strings.
func (t *Table) Column(col int) []string {
	values := make([]string, len(t.Rows))
	for i := range t.Rows {
		values[i] = t.Cell(i, col)
	}
	return values
}

// AppendColumn appends a named column with empty string values to the table
// and returns its zero-based index.
func (t *Table) AppendColumn(name string) int {
	t.Header = append(t.Header, name)
	idx := len(t.Header) - 1
	for i := range t.Rows {
		t.SetCell(i, idx, "")
	}
	return idx
}

// Package gridtest provides an in-memory grid.Store for tests.
package gridtest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Op records one store call in arrival order.
type Op struct {
	Kind   string // "read_all", "append_columns", "write_header_cell", "write_range", "append_rows"
	N      int    // append_columns
	Col    int    // write_header_cell, 1-based
	Value  string // write_header_cell
	Range  string // write_range
	Values [][]string
}

// Fake is an in-memory grid.Store that applies every mutation to its cells and
// records the full call sequence for assertions. The zero value is an empty
// grid.
type Fake struct {
	Cells [][]string
	Ops   []Op

	// Fail maps an op kind to an error returned instead of applying it.
	Fail map[string]error
}

// New creates a fake grid pre-seeded with the given rows. Row 0 is the header.
func New(cells [][]string) *Fake {
	copied := make([][]string, len(cells))
	for i, r := range cells {
		copied[i] = append([]string(nil), r...)
	}
	return &Fake{Cells: copied}
}

// CallsOf returns the recorded ops of one kind, in order.
func (f *Fake) CallsOf(kind string) []Op {
	var ops []Op
	for _, op := range f.Ops {
		if op.Kind == kind {
			ops = append(ops, op)
		}
	}
	return ops
}

func (f *Fake) fail(kind string) error {
	if err, ok := f.Fail[kind]; ok {
		return err
	}
	return nil
}

// ReadAll implements grid.Store.
func (f *Fake) ReadAll(ctx context.Context) ([][]string, error) {
	f.Ops = append(f.Ops, Op{Kind: "read_all"})
	if err := f.fail("read_all"); err != nil {
		return nil, err
	}
	out := make([][]string, len(f.Cells))
	for i, r := range f.Cells {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

// AppendColumns implements grid.Store.
func (f *Fake) AppendColumns(ctx context.Context, n int) error {
	f.Ops = append(f.Ops, Op{Kind: "append_columns", N: n})
	return f.fail("append_columns")
}

// WriteHeaderCell implements grid.Store.
func (f *Fake) WriteHeaderCell(ctx context.Context, col int, value string) error {
	f.Ops = append(f.Ops, Op{Kind: "write_header_cell", Col: col, Value: value})
	if err := f.fail("write_header_cell"); err != nil {
		return err
	}
	if len(f.Cells) == 0 {
		f.Cells = append(f.Cells, nil)
	}
	f.setCell(0, col-1, value)
	return nil
}

// WriteRange implements grid.Store.
func (f *Fake) WriteRange(ctx context.Context, rng string, values [][]string) error {
	f.Ops = append(f.Ops, Op{Kind: "write_range", Range: rng, Values: values})
	if err := f.fail("write_range"); err != nil {
		return err
	}

	col, row, err := parseCellAddress(strings.Split(rng, ":")[0])
	if err != nil {
		return err
	}
	for i, r := range values {
		for j, v := range r {
			f.setCell(row-1+i, col-1+j, v)
		}
	}
	return nil
}

// AppendRows implements grid.Store.
func (f *Fake) AppendRows(ctx context.Context, values [][]string) error {
	f.Ops = append(f.Ops, Op{Kind: "append_rows", Values: values})
	if err := f.fail("append_rows"); err != nil {
		return err
	}
	for _, r := range values {
		f.Cells = append(f.Cells, append([]string(nil), r...))
	}
	return nil
}

func (f *Fake) setCell(row, col int, value string) {
	for len(f.Cells) <= row {
		f.Cells = append(f.Cells, nil)
	}
	r := f.Cells[row]
	for len(r) <= col {
		r = append(r, "")
	}
	r[col] = value
	f.Cells[row] = r
}

// parseCellAddress decodes a cell address like "N2" into its 1-based column
// and row.
func parseCellAddress(addr string) (col, row int, err error) {
	i := 0
	for i < len(addr) && addr[i] >= 'A' && addr[i] <= 'Z' {
		col = col*26 + int(addr[i]-'A') + 1
		i++
	}
	if i == 0 || i == len(addr) {
		return 0, 0, fmt.Errorf("malformed cell address %q", addr)
	}
	row, err = strconv.Atoi(addr[i:])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed cell address %q", addr)
	}
	return col, row, nil
}

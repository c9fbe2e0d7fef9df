// Package grid models a remote spreadsheet worksheet as an addressable
// two-dimensional cell store and provides the in-memory table, column
// addressing, schema reconciliation and chunked batch writing built on it.
//
// Row and column indices on the Store interface are 1-based, matching the
// remote service's addressing. Row 1 is always the header; every other row is
// data, in order. The in-memory Table is the sole mutable working copy during
// a run; the Store is the durable system of record and is only changed through
// the explicit write and append operations below.
package grid

import "context"

// Store is the narrow interface to a remote 2-D cell grid. All operations are
// synchronous and blocking; implementations must not reorder calls.
type Store interface {
	// ReadAll returns every cell as ordered rows of strings. Row 1 is the
	// header. Rows may be ragged: trailing empty cells are not guaranteed
	// to be present.
	ReadAll(ctx context.Context) ([][]string, error)

	// AppendColumns grows the grid by n empty columns at the far right.
	AppendColumns(ctx context.Context, n int) error

	// WriteHeaderCell writes value into row 1 at the given 1-based column.
	WriteHeaderCell(ctx context.Context, col int, value string) error

	// WriteRange overwrites the rectangular block identified by a range
	// address such as "B2:B2001" with the given values.
	WriteRange(ctx context.Context, rng string, values [][]string) error

	// AppendRows appends the given rows after the current last row,
	// preserving their order.
	AppendRows(ctx context.Context, values [][]string) error
}

// NamedColumn references a column by its header name. Named references follow
// the header wherever it lives in the physical layout.
type NamedColumn string

// PhysicalColumn references a column by a fixed zero-based physical index,
// independent of the header. Positional references are deliberate: they pin a
// known fixed layout and do not move if the header gains or loses columns.
type PhysicalColumn int

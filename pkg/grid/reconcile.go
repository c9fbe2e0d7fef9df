package grid

import (
	"context"

	"go.uber.org/zap"

	"github.com/ajitpratap0/sheetsync/pkg/errors"
	"github.com/ajitpratap0/sheetsync/pkg/logger"
)

// EnsureColumn guarantees that a column with the given name exists in both the
// remote grid and the in-memory table, and returns its Descriptor.
//
// When the name already appears in the table's header the call is a no-op and
// returns the existing column's descriptor. Otherwise one column is appended
// remotely, its header cell is named, and the same column (with empty values)
// is appended to the table so both headers stay consistent for the rest of
// the run.
//
// The remote mutation is not transactional: if the column append succeeds but
// the header write fails, the grid is left with an unnamed trailing column.
// Callers must treat that as fatal for the run.
func EnsureColumn(ctx context.Context, store Store, t *Table, name string) (Descriptor, error) {
	if idx, ok := t.ColumnIndex(name); ok {
		return NewDescriptor(name, idx)
	}

	desc, err := NewDescriptor(name, len(t.Header))
	if err != nil {
		return Descriptor{}, err
	}

	if err := store.AppendColumns(ctx, 1); err != nil {
		return Descriptor{}, errors.Wrapf(err, errors.ErrorTypeConnection,
			"failed to append column %q", name)
	}
	if err := store.WriteHeaderCell(ctx, desc.OneBased(), name); err != nil {
		return Descriptor{}, errors.Wrapf(err, errors.ErrorTypeConnection,
			"column appended but header write failed, grid has an unnamed trailing column at %s", desc.Letters())
	}
	t.AppendColumn(name)

	logger.Debug("appended column",
		zap.String("column", name),
		zap.String("letters", desc.Letters()))
	return desc, nil
}

package merge

import (
	"strings"

	"github.com/ajitpratap0/sheetsync/pkg/errors"
	"github.com/ajitpratap0/sheetsync/pkg/grid"
)

// Apply writes mapped values into the target column of the destination table,
// in place. For every row, the value at the key column is trimmed and looked
// up in the mapping; on a hit the target cell is overwritten, on a miss the
// row keeps whatever target value it already had. No remote side effects.
//
// The target column must already exist (see grid.EnsureColumn). Apply is
// idempotent: re-running it with the same mapping changes nothing further.
// It returns the number of rows whose target cell was written.
func Apply(t *grid.Table, mapping map[string]string, key, target grid.NamedColumn) (int, error) {
	keyIdx, ok := t.ColumnIndex(string(key))
	if !ok {
		return 0, errors.Wrapf(ErrMissingColumn, errors.ErrorTypeValidation,
			"column %q not in destination header", string(key))
	}
	targetIdx, ok := t.ColumnIndex(string(target))
	if !ok {
		return 0, errors.Newf(errors.ErrorTypeValidation,
			"target column %q not in destination header, reconcile schema first", string(target))
	}

	matches := 0
	for i := range t.Rows {
		k := strings.TrimSpace(t.Cell(i, keyIdx))
		if v, ok := mapping[k]; ok {
			t.SetCell(i, targetIdx, v)
			matches++
		}
	}
	return matches, nil
}

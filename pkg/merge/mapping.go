// Package merge builds key→value mappings from one table and applies them to
// another as an in-place left join.
package merge

import (
	"strings"

	"github.com/ajitpratap0/sheetsync/pkg/errors"
	"github.com/ajitpratap0/sheetsync/pkg/grid"
)

// ErrMissingColumn is returned when a declared key column cannot be found in a
// table's header.
var ErrMissingColumn = errors.New(errors.ErrorTypeValidation, "key column not found in header")

// BuildMapping scans the source table and returns a key→value mapping from
// the named key column to the positionally addressed value column.
//
// Rows with fewer physical cells than either column reaches are skipped, as
// are rows whose trimmed key is empty; both are expected noise, not errors.
// Keys and values are stored trimmed. The last occurrence of a duplicate key
// wins.
func BuildMapping(t *grid.Table, key grid.NamedColumn, value grid.PhysicalColumn) (map[string]string, error) {
	keyIdx, ok := t.ColumnIndex(string(key))
	if !ok {
		return nil, errors.Wrapf(ErrMissingColumn, errors.ErrorTypeValidation,
			"column %q not in source header", string(key))
	}
	valueIdx := int(value)

	mapping := make(map[string]string, t.NumRows())
	for _, row := range t.Rows {
		if len(row) <= keyIdx || len(row) <= valueIdx {
			continue
		}
		k := strings.TrimSpace(row[keyIdx])
		if k == "" {
			continue
		}
		mapping[k] = strings.TrimSpace(row[valueIdx])
	}
	return mapping, nil
}

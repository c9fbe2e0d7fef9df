package grid

import (
	"fmt"

	"github.com/ajitpratap0/sheetsync/pkg/errors"
)

// ErrInvalidIndex is returned when a column index below 1 is converted to a
// letter label.
var ErrInvalidIndex = errors.New(errors.ErrorTypeValidation, "column index must be positive")

// ColumnLetters converts a 1-based column index to its bijective base-26
// letter label: 1 -> "A", 26 -> "Z", 27 -> "AA", 702 -> "ZZ".
func ColumnLetters(oneBased int) (string, error) {
	if oneBased < 1 {
		return "", ErrInvalidIndex
	}

	var buf [16]byte
	i := len(buf)
	for oneBased > 0 {
		oneBased--
		i--
		buf[i] = byte('A' + oneBased%26)
		oneBased /= 26
	}
	return string(buf[i:]), nil
}

// Descriptor identifies one column for addressing purposes: its header name,
// its zero-based index and the derived letter label. Descriptors are computed,
// never stored; they are recomputed whenever schema reconciliation runs.
type Descriptor struct {
	Name    string
	Index   int // zero-based
	letters string
}

// NewDescriptor builds a Descriptor for the column with the given zero-based
// index.
func NewDescriptor(name string, index int) (Descriptor, error) {
	letters, err := ColumnLetters(index + 1)
	if err != nil {
		return Descriptor{}, errors.Wrapf(err, errors.ErrorTypeValidation,
			"column %q has invalid index %d", name, index)
	}
	return Descriptor{Name: name, Index: index, letters: letters}, nil
}

// OneBased returns the column's 1-based index.
func (d Descriptor) OneBased() int {
	return d.Index + 1
}

// Letters returns the column's letter label.
func (d Descriptor) Letters() string {
	return d.letters
}

// RangeAddress returns the address of the vertical block of this column
// spanning the given 1-based rows, e.g. "N2:N2001".
func (d Descriptor) RangeAddress(firstRow, lastRow int) string {
	return fmt.Sprintf("%s%d:%s%d", d.letters, firstRow, d.letters, lastRow)
}

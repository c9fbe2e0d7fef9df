package grid

import (
	"context"

	"go.uber.org/zap"

	"github.com/ajitpratap0/sheetsync/pkg/errors"
	"github.com/ajitpratap0/sheetsync/pkg/logger"
)

// headerRows is the number of leading rows reserved for the header; data row
// addressing starts right below it.
const headerRows = 1

// ChunkedWriter pushes ordered value sequences to a Store in bounded-size
// batches. The chunk size bounds the number of rows per remote call and exists
// to respect the remote service's request-size and rate constraints. Chunks
// are issued strictly in ascending offset order and are independent calls: a
// failure does not roll back chunks already written.
type ChunkedWriter struct {
	store     Store
	chunkSize int
	logger    *zap.Logger
}

// NewChunkedWriter creates a writer issuing at most chunkSize rows per remote
// call.
func NewChunkedWriter(store Store, chunkSize int) (*ChunkedWriter, error) {
	if chunkSize < 1 {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"chunk size must be positive, got %d", chunkSize)
	}
	return &ChunkedWriter{
		store:     store,
		chunkSize: chunkSize,
		logger:    logger.With(zap.Int("chunk_size", chunkSize)),
	}, nil
}

// WriteColumn overwrites the given column with values, one per destination
// data row in row order: the value at offset o lands at data row o+2 (row 1 is
// the header). It returns the number of remote calls issued.
func (w *ChunkedWriter) WriteColumn(ctx context.Context, col Descriptor, values []string) (int, error) {
	calls := 0
	for off := 0; off < len(values); off += w.chunkSize {
		end := off + w.chunkSize
		if end > len(values) {
			end = len(values)
		}

		first := off + headerRows + 1
		last := first + (end - off) - 1
		rng := col.RangeAddress(first, last)

		block := make([][]string, 0, end-off)
		for _, v := range values[off:end] {
			block = append(block, []string{v})
		}

		if err := w.store.WriteRange(ctx, rng, block); err != nil {
			return calls, errors.Wrapf(err, errors.ErrorTypeConnection,
				"range write %s failed after %d committed chunks", rng, calls)
		}
		calls++
		w.logger.Debug("wrote chunk", zap.String("range", rng), zap.Int("rows", end-off))
	}
	return calls, nil
}

// AppendRows appends full rows in bounded batches, preserving row order. It
// never targets an explicit range; the store places rows after its current
// last row. It returns the number of remote calls issued.
func (w *ChunkedWriter) AppendRows(ctx context.Context, rows [][]string) (int, error) {
	calls := 0
	for off := 0; off < len(rows); off += w.chunkSize {
		end := off + w.chunkSize
		if end > len(rows) {
			end = len(rows)
		}

		if err := w.store.AppendRows(ctx, rows[off:end]); err != nil {
			return calls, errors.Wrapf(err, errors.ErrorTypeConnection,
				"row append failed after %d committed chunks", calls)
		}
		calls++
		w.logger.Debug("appended chunk", zap.Int("rows", end-off))
	}
	return calls, nil
}

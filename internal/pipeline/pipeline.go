// Package pipeline orchestrates sheetsync runs: the sync flow (mapping build,
// schema reconciliation, merge, chunked push) and the upload flow (findings
// ingestion, chunked append).
//
// Execution is single-threaded and sequential: each remote call blocks until
// it completes before the next is issued, and the in-memory table and mapping
// are only touched by the active phase. There is no retry and no rollback; a
// failed run leaves chunks committed before the failure committed.
package pipeline

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/ajitpratap0/sheetsync/pkg/config"
	"github.com/ajitpratap0/sheetsync/pkg/errors"
	"github.com/ajitpratap0/sheetsync/pkg/grid"
	"github.com/ajitpratap0/sheetsync/pkg/ingest"
	"github.com/ajitpratap0/sheetsync/pkg/logger"
	"github.com/ajitpratap0/sheetsync/pkg/merge"
)

// SyncResult summarizes one sync run.
type SyncResult struct {
	Pairs      int // key→status pairs collected from the source
	RowsLoaded int // destination data rows loaded
	Matches    int // destination rows whose target cell was written
	Chunks     int // remote range writes issued
}

// Sync builds a key→status mapping from the source worksheet, ensures the
// target column exists in the destination, merges the mapping into the
// destination table by key, and pushes the merged column back in chunked
// range writes.
func Sync(ctx context.Context, source, dest grid.Store, cfg config.SyncConfig) (*SyncResult, error) {
	log := logger.Get()

	src, err := grid.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	mapping, err := merge.BuildMapping(src,
		grid.NamedColumn(cfg.Source.KeyColumn),
		grid.PhysicalColumn(cfg.Source.StatusColumnIndex))
	if err != nil {
		return nil, err
	}
	log.Info("collected key pairs from source",
		zap.Int("pairs", len(mapping)),
		zap.Int("source_rows", src.NumRows()))

	dst, err := grid.Load(ctx, dest)
	if err != nil {
		return nil, err
	}
	log.Info("loaded destination table", zap.Int("rows", dst.NumRows()))

	target, err := grid.EnsureColumn(ctx, dest, dst, cfg.Destination.TargetColumn)
	if err != nil {
		return nil, err
	}

	matches, err := merge.Apply(dst, mapping,
		grid.NamedColumn(cfg.Destination.KeyColumn),
		grid.NamedColumn(cfg.Destination.TargetColumn))
	if err != nil {
		return nil, err
	}
	log.Info("merged statuses", zap.Int("matches", matches))

	writer, err := grid.NewChunkedWriter(dest, cfg.ChunkSize)
	if err != nil {
		return nil, err
	}
	chunks, err := writer.WriteColumn(ctx, target, dst.Column(target.Index))
	if err != nil {
		return nil, err
	}

	return &SyncResult{
		Pairs:      len(mapping),
		RowsLoaded: dst.NumRows(),
		Matches:    matches,
		Chunks:     chunks,
	}, nil
}

// UploadResult summarizes one upload run.
type UploadResult struct {
	Rows    int // findings appended
	Skipped int // non-blank lines dropped as unparsable
	Chunks  int // remote append calls issued, header row excluded
}

// Upload flattens ND-JSON findings from input and appends them to the store:
// first the header row, then the data rows in bounded chunks. The target
// worksheet is expected to be empty; rows land after its current last row.
func Upload(ctx context.Context, store grid.Store, input io.Reader, chunkSize int) (*UploadResult, error) {
	rows, skipped, err := ingest.ReadFindings(input)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrorTypeData, "no findings found in input")
	}
	logger.Info("parsed findings", zap.Int("rows", len(rows)), zap.Int("skipped", skipped))

	writer, err := grid.NewChunkedWriter(store, chunkSize)
	if err != nil {
		return nil, err
	}

	if err := store.AppendRows(ctx, [][]string{ingest.Header()}); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to write header row")
	}
	chunks, err := writer.AppendRows(ctx, rows)
	if err != nil {
		return nil, err
	}

	return &UploadResult{Rows: len(rows), Skipped: skipped, Chunks: chunks}, nil
}

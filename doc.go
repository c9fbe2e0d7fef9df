// Package sheetsync synchronizes tabular data held in two independently
// maintained Google Sheets and ingests TruffleHog ND-JSON findings into a
// worksheet through bounded-size batch writes.
//
// # Architecture
//
// The remote spreadsheet service is modeled as a narrow Grid Store interface
// (grid.Store) with exactly five operations: read-all, append-columns,
// write-header-cell, write-range and append-rows. Everything above it is pure
// table manipulation:
//
//   - grid: column addressing (bijective base-26 letters), the in-memory
//     Table, schema reconciliation and the chunked batch writer
//   - grid/sheets: the Google Sheets implementation of the store
//   - merge: key→value mapping construction and the in-place left-join merge
//   - ingest: ND-JSON findings flattening
//   - internal/pipeline: the sync and upload run orchestration
//
// Runs are single-threaded and sequential. Remote writes are chunked to
// respect the service's request-size and rate limits; chunk order equals call
// order and a mid-run failure leaves earlier chunks committed.
//
// # Quick start
//
//	sheetsync sync --config sheetsync.yaml
//	sheetsync upload --config sheetsync.yaml --input findings.json
package sheetsync

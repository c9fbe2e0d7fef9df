// Package config provides the configuration for sheetsync runs.
//
// Configuration is loaded from a YAML file with ${ENV_VAR} substitution so
// spreadsheet IDs and credential paths can stay out of version control.
//
// Example:
//
//	credentials_file: ${SHEETSYNC_CREDENTIALS}
//	sync:
//	  source:
//	    spreadsheet_id: 1BwWRodq...
//	    worksheet: TruffleHog
//	    key_column: Github Links
//	    status_column_index: 13
//	  destination:
//	    spreadsheet_id: 1D0IDweZ...
//	    worksheet: Trufflehog Data
//	    key_column: Link
//	    target_column: Validity status
//	  chunk_size: 2000
package config

import (
	"github.com/ajitpratap0/sheetsync/pkg/errors"
)

// Defaults for chunked remote writes. Sync pushes single-column range updates
// and tolerates larger chunks than upload's full-row appends.
const (
	DefaultSyncChunkSize   = 2000
	DefaultUploadChunkSize = 1000
	DefaultRequestsPerMin  = 60
)

// Config is the root configuration shared by all commands.
type Config struct {
	// CredentialsFile is the service-account key used for every remote call.
	CredentialsFile string `yaml:"credentials_file" json:"credentials_file"`

	// RequestsPerMinute caps the client-side remote call rate (0 = default).
	RequestsPerMinute int `yaml:"requests_per_minute" json:"requests_per_minute"`

	Sync   SyncConfig   `yaml:"sync" json:"sync"`
	Upload UploadConfig `yaml:"upload" json:"upload"`
}

// SyncConfig configures the status synchronization between two worksheets.
type SyncConfig struct {
	Source      SourceSheet      `yaml:"source" json:"source"`
	Destination DestinationSheet `yaml:"destination" json:"destination"`

	// ChunkSize bounds the number of rows per remote range write.
	ChunkSize int `yaml:"chunk_size" json:"chunk_size"`
}

// SourceSheet identifies the worksheet the key→status mapping is built from.
type SourceSheet struct {
	SpreadsheetID string `yaml:"spreadsheet_id" json:"spreadsheet_id"`
	Worksheet     string `yaml:"worksheet" json:"worksheet"`

	// KeyColumn is the header name of the join key column.
	KeyColumn string `yaml:"key_column" json:"key_column"`

	// StatusColumnIndex is the fixed zero-based physical index of the status
	// column. It is positional on purpose: the source sheet has a known fixed
	// layout and the status column is addressed independently of header drift.
	StatusColumnIndex int `yaml:"status_column_index" json:"status_column_index"`
}

// DestinationSheet identifies the worksheet that receives merged statuses.
type DestinationSheet struct {
	SpreadsheetID string `yaml:"spreadsheet_id" json:"spreadsheet_id"`
	Worksheet     string `yaml:"worksheet" json:"worksheet"`

	// KeyColumn is the header name of the join key column.
	KeyColumn string `yaml:"key_column" json:"key_column"`

	// TargetColumn is the column created or updated with merged values.
	TargetColumn string `yaml:"target_column" json:"target_column"`
}

// UploadConfig configures ND-JSON findings ingestion.
type UploadConfig struct {
	SpreadsheetID string `yaml:"spreadsheet_id" json:"spreadsheet_id"`
	Worksheet     string `yaml:"worksheet" json:"worksheet"`

	// InputFile is the ND-JSON findings file to ingest.
	InputFile string `yaml:"input_file" json:"input_file"`

	// ChunkSize bounds the number of rows per remote append.
	ChunkSize int `yaml:"chunk_size" json:"chunk_size"`
}

// ApplyDefaults fills unset values.
func (c *Config) ApplyDefaults() {
	if c.RequestsPerMinute <= 0 {
		c.RequestsPerMinute = DefaultRequestsPerMin
	}
	if c.Sync.ChunkSize <= 0 {
		c.Sync.ChunkSize = DefaultSyncChunkSize
	}
	if c.Upload.ChunkSize <= 0 {
		c.Upload.ChunkSize = DefaultUploadChunkSize
	}
}

// ValidateSync checks everything the sync command needs before any remote
// call is made.
func (c *Config) ValidateSync() error {
	if c.CredentialsFile == "" {
		return errors.New(errors.ErrorTypeConfig, "credentials_file is required")
	}
	if c.Sync.Source.SpreadsheetID == "" || c.Sync.Source.Worksheet == "" {
		return errors.New(errors.ErrorTypeConfig, "sync.source spreadsheet_id and worksheet are required")
	}
	if c.Sync.Destination.SpreadsheetID == "" || c.Sync.Destination.Worksheet == "" {
		return errors.New(errors.ErrorTypeConfig, "sync.destination spreadsheet_id and worksheet are required")
	}
	if c.Sync.Source.KeyColumn == "" || c.Sync.Destination.KeyColumn == "" {
		return errors.New(errors.ErrorTypeConfig, "sync key_column is required for both sheets")
	}
	if c.Sync.Destination.TargetColumn == "" {
		return errors.New(errors.ErrorTypeConfig, "sync.destination.target_column is required")
	}
	if c.Sync.Source.StatusColumnIndex < 0 {
		return errors.New(errors.ErrorTypeConfig, "sync.source.status_column_index must be >= 0")
	}
	if c.Sync.ChunkSize < 1 {
		return errors.New(errors.ErrorTypeConfig, "sync.chunk_size must be positive")
	}
	return nil
}

// ValidateUpload checks everything the upload command needs before any remote
// call is made.
func (c *Config) ValidateUpload() error {
	if c.CredentialsFile == "" {
		return errors.New(errors.ErrorTypeConfig, "credentials_file is required")
	}
	if c.Upload.SpreadsheetID == "" || c.Upload.Worksheet == "" {
		return errors.New(errors.ErrorTypeConfig, "upload spreadsheet_id and worksheet are required")
	}
	if c.Upload.InputFile == "" {
		return errors.New(errors.ErrorTypeConfig, "upload.input_file is required")
	}
	if c.Upload.ChunkSize < 1 {
		return errors.New(errors.ErrorTypeConfig, "upload.chunk_size must be positive")
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
credentials_file: ${SHEETSYNC_TEST_CREDS}
sync:
  source:
    spreadsheet_id: src-id
    worksheet: TruffleHog
    key_column: Github Links
    status_column_index: 13
  destination:
    spreadsheet_id: dst-id
    worksheet: Trufflehog Data
    key_column: Link
    target_column: Validity status
upload:
  spreadsheet_id: dst-id
  worksheet: Trufflehog Data
  input_file: findings.json
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sheetsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("SHEETSYNC_TEST_CREDS", "/tmp/creds.json")

	cfg := &Config{}
	require.NoError(t, Load(writeConfig(t, sampleYAML), cfg))
	cfg.ApplyDefaults()

	assert.Equal(t, "/tmp/creds.json", cfg.CredentialsFile, "env vars are substituted")
	assert.Equal(t, "src-id", cfg.Sync.Source.SpreadsheetID)
	assert.Equal(t, 13, cfg.Sync.Source.StatusColumnIndex)
	assert.Equal(t, "Validity status", cfg.Sync.Destination.TargetColumn)
	assert.Equal(t, DefaultSyncChunkSize, cfg.Sync.ChunkSize)
	assert.Equal(t, DefaultUploadChunkSize, cfg.Upload.ChunkSize)
	assert.Equal(t, DefaultRequestsPerMin, cfg.RequestsPerMinute)

	assert.NoError(t, cfg.ValidateSync())
	assert.NoError(t, cfg.ValidateUpload())
}

func TestLoad_MissingFile(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, Load("/nonexistent/sheetsync.yaml", cfg))
}

func TestLoad_BadYAML(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, Load(writeConfig(t, "sync: ["), cfg))
}

func TestValidateSync(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		require.NoError(t, Load(writeConfig(t, sampleYAML), cfg))
		cfg.CredentialsFile = "/tmp/creds.json"
		cfg.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing credentials", func(c *Config) { c.CredentialsFile = "" }},
		{"missing source id", func(c *Config) { c.Sync.Source.SpreadsheetID = "" }},
		{"missing destination worksheet", func(c *Config) { c.Sync.Destination.Worksheet = "" }},
		{"missing key column", func(c *Config) { c.Sync.Source.KeyColumn = "" }},
		{"missing target column", func(c *Config) { c.Sync.Destination.TargetColumn = "" }},
		{"negative status index", func(c *Config) { c.Sync.Source.StatusColumnIndex = -1 }},
		{"zero chunk size", func(c *Config) { c.Sync.ChunkSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			require.NoError(t, cfg.ValidateSync())
			tt.mutate(cfg)
			assert.Error(t, cfg.ValidateSync())
		})
	}
}

func TestValidateUpload(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, Load(writeConfig(t, sampleYAML), cfg))
	cfg.CredentialsFile = "/tmp/creds.json"
	cfg.ApplyDefaults()
	require.NoError(t, cfg.ValidateUpload())

	cfg.Upload.InputFile = ""
	assert.Error(t, cfg.ValidateUpload())
}

package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/sheetsync/pkg/grid"
)

func sourceTable(rows [][]string) *grid.Table {
	return &grid.Table{
		Header: []string{"Github Links", "Repo", "Status"},
		Rows:   rows,
	}
}

func TestBuildMapping(t *testing.T) {
	table := sourceTable([][]string{
		{"repoA", "a", "valid"},
		{"repoB", "b", "revoked"},
	})

	mapping, err := BuildMapping(table, "Github Links", grid.PhysicalColumn(2))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"repoA": "valid",
		"repoB": "revoked",
	}, mapping)
}

func TestBuildMapping_MissingKeyColumn(t *testing.T) {
	table := sourceTable(nil)

	_, err := BuildMapping(table, "No Such Column", grid.PhysicalColumn(2))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestBuildMapping_SkipsShortRows(t *testing.T) {
	table := sourceTable([][]string{
		{"repoA", "a", "valid"},
		{"repoB", "b"}, // no status cell
		{"repoC"},      // key only
		{},             // empty row
	})

	mapping, err := BuildMapping(table, "Github Links", grid.PhysicalColumn(2))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"repoA": "valid"}, mapping)
}

func TestBuildMapping_TrimsAndSkipsEmptyKeys(t *testing.T) {
	table := sourceTable([][]string{
		{"  repoA  ", "a", "  valid  "},
		{"   ", "b", "revoked"},
		{"", "c", "revoked"},
	})

	mapping, err := BuildMapping(table, "Github Links", grid.PhysicalColumn(2))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"repoA": "valid"}, mapping)
}

func TestBuildMapping_LastDuplicateWins(t *testing.T) {
	table := sourceTable([][]string{
		{"repoA", "a", "valid"},
		{"repoA", "b", "revoked"},
		{" repoA ", "c", "unknown"},
	})

	mapping, err := BuildMapping(table, "Github Links", grid.PhysicalColumn(2))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"repoA": "unknown"}, mapping)
}

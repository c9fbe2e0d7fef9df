package grid

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/sheetsync/pkg/grid/gridtest"
)

func TestEnsureColumn_Existing(t *testing.T) {
	store := gridtest.New([][]string{{"Link", "Validity status"}})
	table := &Table{Header: []string{"Link", "Validity status"}}

	desc, err := EnsureColumn(context.Background(), store, table, "Validity status")
	require.NoError(t, err)

	assert.Equal(t, 1, desc.Index)
	assert.Empty(t, store.CallsOf("append_columns"), "existing column must not mutate the grid")
	assert.Empty(t, store.CallsOf("write_header_cell"))
}

func TestEnsureColumn_Missing(t *testing.T) {
	store := gridtest.New([][]string{
		{"Link", "Repo"},
		{"repoA", "a"},
	})
	table, err := Load(context.Background(), store)
	require.NoError(t, err)

	desc, err := EnsureColumn(context.Background(), store, table, "Validity status")
	require.NoError(t, err)

	assert.Equal(t, 2, desc.Index)
	assert.Equal(t, "C", desc.Letters())

	appends := store.CallsOf("append_columns")
	require.Len(t, appends, 1)
	assert.Equal(t, 1, appends[0].N)

	headers := store.CallsOf("write_header_cell")
	require.Len(t, headers, 1)
	assert.Equal(t, 3, headers[0].Col)
	assert.Equal(t, "Validity status", headers[0].Value)

	// Table header stays consistent with the grid
	idx, ok := table.ColumnIndex("Validity status")
	assert.True(t, ok)
	assert.Equal(t, 2, idx)
	assert.Equal(t, "", table.Cell(0, 2))
}

func TestEnsureColumn_Idempotent(t *testing.T) {
	store := gridtest.New([][]string{{"Link"}})
	table, err := Load(context.Background(), store)
	require.NoError(t, err)

	first, err := EnsureColumn(context.Background(), store, table, "Validity status")
	require.NoError(t, err)
	second, err := EnsureColumn(context.Background(), store, table, "Validity status")
	require.NoError(t, err)

	assert.Equal(t, first.Index, second.Index)
	assert.Len(t, store.CallsOf("append_columns"), 1, "second call must be a no-op")
	assert.Len(t, store.CallsOf("write_header_cell"), 1)
}

func TestEnsureColumn_HeaderWriteFailure(t *testing.T) {
	boom := errors.New("quota exceeded")
	store := gridtest.New([][]string{{"Link"}})
	store.Fail = map[string]error{"write_header_cell": boom}
	table := &Table{Header: []string{"Link"}}

	_, err := EnsureColumn(context.Background(), store, table, "Validity status")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// The remote column append already happened; the local header must not
	// advance past the failure.
	assert.Len(t, store.CallsOf("append_columns"), 1)
	assert.Equal(t, []string{"Link"}, table.Header)
}

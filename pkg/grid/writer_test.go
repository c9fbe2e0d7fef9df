package grid

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/sheetsync/pkg/grid/gridtest"
)

func TestNewChunkedWriter_InvalidChunkSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := NewChunkedWriter(gridtest.New(nil), size)
		assert.Error(t, err)
	}
}

func TestChunkedWriter_WriteColumn(t *testing.T) {
	values := make([]string, 5000)
	for i := range values {
		values[i] = fmt.Sprintf("v%d", i)
	}

	store := gridtest.New(nil)
	writer, err := NewChunkedWriter(store, 2000)
	require.NoError(t, err)

	desc, err := NewDescriptor("Validity status", 0)
	require.NoError(t, err)

	calls, err := writer.WriteColumn(context.Background(), desc, values)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	writes := store.CallsOf("write_range")
	require.Len(t, writes, 3)
	assert.Equal(t, "A2:A2001", writes[0].Range)
	assert.Equal(t, "A2002:A4001", writes[1].Range)
	assert.Equal(t, "A4002:A5001", writes[2].Range)

	// Concatenating the chunks in call order reconstructs the sequence.
	var got []string
	for _, w := range writes {
		for _, row := range w.Values {
			require.Len(t, row, 1, "chunk boundaries must not split a row")
			got = append(got, row[0])
		}
	}
	assert.Equal(t, values, got)
}

func TestChunkedWriter_WriteColumn_ExactMultiple(t *testing.T) {
	store := gridtest.New(nil)
	writer, err := NewChunkedWriter(store, 2)
	require.NoError(t, err)

	desc, err := NewDescriptor("Status", 1)
	require.NoError(t, err)

	calls, err := writer.WriteColumn(context.Background(), desc, []string{"a", "b", "c", "d"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	writes := store.CallsOf("write_range")
	assert.Equal(t, "B2:B3", writes[0].Range)
	assert.Equal(t, "B4:B5", writes[1].Range)
}

func TestChunkedWriter_WriteColumn_Empty(t *testing.T) {
	store := gridtest.New(nil)
	writer, err := NewChunkedWriter(store, 100)
	require.NoError(t, err)

	desc, err := NewDescriptor("Status", 0)
	require.NoError(t, err)

	calls, err := writer.WriteColumn(context.Background(), desc, nil)
	require.NoError(t, err)
	assert.Zero(t, calls)
	assert.Empty(t, store.Ops)
}

func TestChunkedWriter_WriteColumn_FailureKeepsEarlierChunks(t *testing.T) {
	boom := errors.New("connection reset")
	store := gridtest.New(nil)

	writer, err := NewChunkedWriter(store, 1)
	require.NoError(t, err)
	desc, err := NewDescriptor("Status", 0)
	require.NoError(t, err)

	// First chunk succeeds, then every write fails.
	_, err = writer.WriteColumn(context.Background(), desc, []string{"first"})
	require.NoError(t, err)
	store.Fail = map[string]error{"write_range": boom}

	calls, err := writer.WriteColumn(context.Background(), desc, []string{"second"})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, calls)
	assert.Equal(t, "first", store.Cells[1][0], "committed chunk is not rolled back")
}

func TestChunkedWriter_AppendRows(t *testing.T) {
	rows := [][]string{
		{"a", "1"},
		{"b", "2"},
		{"c", "3"},
		{"d", "4"},
		{"e", "5"},
	}

	store := gridtest.New(nil)
	writer, err := NewChunkedWriter(store, 2)
	require.NoError(t, err)

	calls, err := writer.AppendRows(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	appends := store.CallsOf("append_rows")
	require.Len(t, appends, 3)
	assert.Len(t, appends[0].Values, 2)
	assert.Len(t, appends[1].Values, 2)
	assert.Len(t, appends[2].Values, 1)

	assert.Equal(t, rows, store.Cells, "append preserves row order")
}

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/propjson/internal/core/domain"
)

func TestHistoryStore_SaveGet(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()
	report := domain.ConversionReport{
		RunID:     "run-1",
		Target:    domain.FormatJSON,
		Converted: []string{"/out/a.json"},
	}

	require.NoError(t, store.Save(ctx, report))

	got, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, report, *got)

	// Returned copies do not alias stored state.
	got.Converted[0] = "changed"
	again, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "/out/a.json", again.Converted[0])
}

func TestHistoryStore_Get_NotFound(t *testing.T) {
	_, err := NewHistoryStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryStore_List(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, domain.ConversionReport{RunID: "old", StartedAt: base}))
	require.NoError(t, store.Save(ctx, domain.ConversionReport{RunID: "new", StartedAt: base.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, domain.ConversionReport{RunID: "mid", StartedAt: base.Add(time.Minute)}))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].RunID)
	assert.Equal(t, "mid", all[1].RunID)
	assert.Equal(t, "old", all[2].RunID)

	limited, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "new", limited[0].RunID)
}

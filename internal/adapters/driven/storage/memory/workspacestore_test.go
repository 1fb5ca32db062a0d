package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

func TestWorkspaceStore_Snapshot(t *testing.T) {
	store := NewWorkspaceStore()
	ctx := context.Background()

	empty, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	docs := []domain.Document{
		{ID: "b", Keywords: []domain.Keyword{{Value: "x", Type: domain.KeywordManual}}},
		{ID: "a"},
	}
	require.NoError(t, store.SaveSnapshot(ctx, docs))
	docs[0].Keywords[0].Value = "mutated"

	loaded, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "b", loaded[0].ID)
	assert.Equal(t, "x", loaded[0].Keywords[0].Value)
}

func TestWorkspaceStore_Selection(t *testing.T) {
	store := NewWorkspaceStore()
	ctx := context.Background()

	ids, err := store.LoadSelection(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, store.SaveSelection(ctx, []string{"c", "a"}))
	ids, err = store.LoadSelection(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, ids)
}

func TestWorkspaceStore_ViewState(t *testing.T) {
	store := NewWorkspaceStore()
	ctx := context.Background()

	state := domain.ViewState{Filter: "pdf", SortColumn: domain.SortSize, Descending: true}
	require.NoError(t, store.SaveViewState(ctx, state))

	got, err := store.LoadViewState(ctx)
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestWorkspaceStore_Unsynced(t *testing.T) {
	store := NewWorkspaceStore()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.MarkUnsynced(ctx, domain.UnsyncedRow{DocumentID: "d2", Reason: "timeout", Since: now}))
	require.NoError(t, store.MarkUnsynced(ctx, domain.UnsyncedRow{DocumentID: "d1", Reason: "500", Since: now}))
	require.NoError(t, store.MarkUnsynced(ctx, domain.UnsyncedRow{DocumentID: "d1", Reason: "503", Since: now}))

	rows, err := store.ListUnsynced(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "d1", rows[0].DocumentID)
	assert.Equal(t, "503", rows[0].Reason)

	require.NoError(t, store.ClearUnsynced(ctx, "d1"))
	require.NoError(t, store.ClearUnsynced(ctx, "missing"))
	rows, _ = store.ListUnsynced(ctx)
	assert.Len(t, rows, 1)

	require.NoError(t, store.ClearAllUnsynced(ctx))
	rows, _ = store.ListUnsynced(ctx)
	assert.Empty(t, rows)
}

package driven

import (
	"context"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

// WorkspaceStore keeps the local table state between sessions:
// the last fetched documents, the selection, the view state
// and the rows whose keyword updates were not persisted.
type WorkspaceStore interface {
	// SaveSnapshot replaces the stored document snapshot.
	SaveSnapshot(ctx context.Context, docs []domain.Document) error

	// LoadSnapshot returns the stored documents in their stored order.
	// Returns an empty slice if no snapshot exists.
	LoadSnapshot(ctx context.Context) ([]domain.Document, error)

	// SaveSelection replaces the stored selection, keeping order.
	SaveSelection(ctx context.Context, ids []string) error

	// LoadSelection returns the stored selection in insertion order.
	LoadSelection(ctx context.Context) ([]string, error)

	// SaveViewState stores the filter and sort choice.
	SaveViewState(ctx context.Context, state domain.ViewState) error

	// LoadViewState returns the stored view state, or the zero value.
	LoadViewState(ctx context.Context) (domain.ViewState, error)

	// MarkUnsynced records a document whose keywords were not persisted.
	MarkUnsynced(ctx context.Context, row domain.UnsyncedRow) error

	// ClearUnsynced removes the record for a document. Missing records are not an error.
	ClearUnsynced(ctx context.Context, documentID string) error

	// ListUnsynced returns every unsynced record.
	ListUnsynced(ctx context.Context) ([]domain.UnsyncedRow, error)

	// ClearAllUnsynced removes every unsynced record.
	ClearAllUnsynced(ctx context.Context) error
}

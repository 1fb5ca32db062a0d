package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driven"
)

// Ensure WorkspaceStore implements the interface.
var _ driven.WorkspaceStore = (*WorkspaceStore)(nil)

// WorkspaceStore is an in-memory implementation of driven.WorkspaceStore.
type WorkspaceStore struct {
	mu        sync.RWMutex
	snapshot  []domain.Document
	selection []string
	state     domain.ViewState
	unsynced  map[string]domain.UnsyncedRow
}

// NewWorkspaceStore creates a new in-memory workspace store.
func NewWorkspaceStore() *WorkspaceStore {
	return &WorkspaceStore{
		unsynced: make(map[string]domain.UnsyncedRow),
	}
}

// SaveSnapshot replaces the stored documents.
func (s *WorkspaceStore) SaveSnapshot(_ context.Context, docs []domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = make([]domain.Document, len(docs))
	for i := range docs {
		s.snapshot[i] = docs[i].Clone()
	}
	return nil
}

// LoadSnapshot returns the stored documents.
func (s *WorkspaceStore) LoadSnapshot(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Document, len(s.snapshot))
	for i := range s.snapshot {
		result[i] = s.snapshot[i].Clone()
	}
	return result, nil
}

// SaveSelection replaces the stored selection.
func (s *WorkspaceStore) SaveSelection(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = append([]string(nil), ids...)
	return nil
}

// LoadSelection returns the stored selection.
func (s *WorkspaceStore) LoadSelection(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.selection...), nil
}

// SaveViewState stores the filter and sort choice.
func (s *WorkspaceStore) SaveViewState(_ context.Context, state domain.ViewState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	return nil
}

// LoadViewState returns the stored view state.
func (s *WorkspaceStore) LoadViewState(_ context.Context) (domain.ViewState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, nil
}

// MarkUnsynced records an unsynced row, replacing any earlier record.
func (s *WorkspaceStore) MarkUnsynced(_ context.Context, row domain.UnsyncedRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsynced[row.DocumentID] = row
	return nil
}

// ClearUnsynced removes the record for a document.
func (s *WorkspaceStore) ClearUnsynced(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.unsynced, documentID)
	return nil
}

// ListUnsynced returns every unsynced record ordered by document id.
func (s *WorkspaceStore) ListUnsynced(_ context.Context) ([]domain.UnsyncedRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.UnsyncedRow, 0, len(s.unsynced))
	for _, row := range s.unsynced {
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DocumentID < result[j].DocumentID
	})
	return result, nil
}

// ClearAllUnsynced removes every unsynced record.
func (s *WorkspaceStore) ClearAllUnsynced(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsynced = make(map[string]domain.UnsyncedRow)
	return nil
}

package mcp

import (
	"context"
	"io"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driving"
)

// mockTaggingService is a mock implementation of driving.TaggingService.
type mockTaggingService struct {
	RefreshFunc      func(ctx context.Context) error
	ApplyKeywordFunc func(ctx context.Context, id string, entry domain.KeywordCatalogEntry) (*driving.ApplyResult, error)
	RemoveFunc       func(ctx context.Context, id, value string) (*driving.ApplyResult, error)

	refreshes int
	applied   []domain.KeywordCatalogEntry
}

func (m *mockTaggingService) Refresh(ctx context.Context) error {
	m.refreshes++
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx)
	}
	return nil
}

func (m *mockTaggingService) ApplyKeyword(
	ctx context.Context, id string, entry domain.KeywordCatalogEntry,
) (*driving.ApplyResult, error) {
	m.applied = append(m.applied, entry)
	if m.ApplyKeywordFunc != nil {
		return m.ApplyKeywordFunc(ctx, id, entry)
	}
	return &driving.ApplyResult{Document: domain.Document{ID: id}, Added: entry.ApplyIDs(), Persisted: true}, nil
}

func (m *mockTaggingService) ApplyBulkKeywords(context.Context, domain.KeywordCatalogEntry) (*driving.BulkResult, error) {
	return &driving.BulkResult{}, nil
}

func (m *mockTaggingService) RemoveKeyword(ctx context.Context, id, value string) (*driving.ApplyResult, error) {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, id, value)
	}
	return &driving.ApplyResult{Document: domain.Document{ID: id}, Removed: []string{value}, Persisted: true}, nil
}

func (m *mockTaggingService) ApplyTaggingMethod(context.Context, domain.TaggingRequest) (*domain.TaggingResponse, error) {
	return &domain.TaggingResponse{Status: 200}, nil
}

func (m *mockTaggingService) Upload(_ context.Context, name string, _ io.Reader) (*domain.Document, error) {
	return &domain.Document{ID: name}, nil
}

func (m *mockTaggingService) Download(context.Context, []string, io.Writer) error {
	return nil
}

func (m *mockTaggingService) Busy() bool {
	return false
}

// mockTable is a mock implementation of driving.TableView over a fixed slice.
type mockTable struct {
	docs     []domain.Document
	unsynced map[string]domain.UnsyncedRow
	lastTerm string
}

func (m *mockTable) Rows() []domain.Document { return m.docs }

func (m *mockTable) Matching(term string) []domain.Document {
	m.lastTerm = term
	return m.docs
}

func (m *mockTable) All() []domain.Document { return m.docs }

func (m *mockTable) Get(id string) (domain.Document, bool) {
	for _, d := range m.docs {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Document{}, false
}

func (m *mockTable) SetFilter(string) {}
func (m *mockTable) SetSort(domain.SortColumn, bool) {}
func (m *mockTable) State() domain.ViewState { return domain.ViewState{} }
func (m *mockTable) IsSelected(string) bool { return false }
func (m *mockTable) ToggleSelected(string) {}
func (m *mockTable) IsAllSelected() bool { return false }
func (m *mockTable) ToggleAll() {}
func (m *mockTable) Selected() []domain.Document { return nil }
func (m *mockTable) ClearSelection() {}
func (m *mockTable) Unsynced() map[string]domain.UnsyncedRow { return m.unsynced }

// mockCatalog is a mock implementation of driving.KeywordCatalog.
type mockCatalog struct {
	entries []domain.KeywordCatalogEntry
	loadErr error
	loads   int
}

func (m *mockCatalog) Load(context.Context) error {
	m.loads++
	return m.loadErr
}

func (m *mockCatalog) Entries() []domain.KeywordCatalogEntry { return m.entries }

func (m *mockCatalog) Search(string) []domain.KeywordCatalogEntry { return m.entries }

func (m *mockCatalog) Entry(id string) (domain.KeywordCatalogEntry, bool) {
	for _, e := range m.entries {
		if e.ID == id {
			return e, true
		}
	}
	return domain.KeywordCatalogEntry{}, false
}

func (m *mockCatalog) Models() []domain.KeywordModel { return nil }

func (m *mockCatalog) Model(string) (domain.KeywordModel, bool) { return domain.KeywordModel{}, false }

// mockWorkspace counts saves.
type mockWorkspace struct {
	saves int
}

func (m *mockWorkspace) SaveWorkspace(context.Context) error {
	m.saves++
	return nil
}

func (m *mockWorkspace) RestoreWorkspace(context.Context) (bool, error) {
	return false, nil
}

package tui

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driving"
	"github.com/Alma-hanif/infinitag/internal/core/services"
)

// mockTaggingService implements driving.TaggingService for testing.
type mockTaggingService struct {
	mu sync.Mutex

	RefreshFunc     func(ctx context.Context) error
	ApplyFunc       func(ctx context.Context, id string, entry domain.KeywordCatalogEntry) (*driving.ApplyResult, error)
	BulkFunc        func(ctx context.Context, entry domain.KeywordCatalogEntry) (*driving.BulkResult, error)
	RemoveFunc      func(ctx context.Context, id, value string) (*driving.ApplyResult, error)
	ApplyMethodFunc func(ctx context.Context, req domain.TaggingRequest) (*domain.TaggingResponse, error)
	busy            bool

	refreshes int
	requests  []domain.TaggingRequest
}

func (m *mockTaggingService) Refresh(ctx context.Context) error {
	m.mu.Lock()
	m.refreshes++
	m.mu.Unlock()
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx)
	}
	return nil
}

func (m *mockTaggingService) ApplyKeyword(
	ctx context.Context, id string, entry domain.KeywordCatalogEntry,
) (*driving.ApplyResult, error) {
	if m.ApplyFunc != nil {
		return m.ApplyFunc(ctx, id, entry)
	}
	return &driving.ApplyResult{Document: domain.Document{ID: id}, Added: entry.ApplyIDs(), Persisted: true}, nil
}

func (m *mockTaggingService) ApplyBulkKeywords(
	ctx context.Context, entry domain.KeywordCatalogEntry,
) (*driving.BulkResult, error) {
	if m.BulkFunc != nil {
		return m.BulkFunc(ctx, entry)
	}
	return &driving.BulkResult{}, nil
}

func (m *mockTaggingService) RemoveKeyword(ctx context.Context, id, value string) (*driving.ApplyResult, error) {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, id, value)
	}
	return &driving.ApplyResult{Document: domain.Document{ID: id}, Removed: []string{value}, Persisted: true}, nil
}

func (m *mockTaggingService) ApplyTaggingMethod(
	ctx context.Context, req domain.TaggingRequest,
) (*domain.TaggingResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.ApplyMethodFunc != nil {
		return m.ApplyMethodFunc(ctx, req)
	}
	return &domain.TaggingResponse{Status: 200}, nil
}

func (m *mockTaggingService) Upload(_ context.Context, name string, _ io.Reader) (*domain.Document, error) {
	return &domain.Document{ID: name}, nil
}

func (m *mockTaggingService) Download(context.Context, []string, io.Writer) error {
	return nil
}

func (m *mockTaggingService) Busy() bool {
	return m.busy
}

// mockWorkspace implements driving.WorkspaceService for testing.
type mockWorkspace struct {
	restored   bool
	restoreErr error
	saves      int
}

func (m *mockWorkspace) SaveWorkspace(context.Context) error {
	m.saves++
	return nil
}

func (m *mockWorkspace) RestoreWorkspace(context.Context) (bool, error) {
	return m.restored, m.restoreErr
}

func TestPorts_Validate(t *testing.T) {
	table := services.NewDocumentTableView()

	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"valid", &Ports{Tagging: &mockTaggingService{}, Table: table}, nil},
		{"missing tagging", &Ports{Table: table}, ErrMissingTaggingService},
		{"missing table", &Ports{Tagging: &mockTaggingService{}}, ErrMissingTableView},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPorts_OptionalFields(t *testing.T) {
	ports := &Ports{
		Tagging:       &mockTaggingService{},
		Table:         services.NewDocumentTableView(),
		Catalog:       services.NewKeywordCatalog(nil),
		Workspace:     &mockWorkspace{},
		Notifications: make(chan domain.Notification),
	}

	assert.NoError(t, ports.Validate())
}

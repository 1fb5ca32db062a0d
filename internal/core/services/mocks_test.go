package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driven"
)

// mockBackend implements driven.Backend with overridable functions.
type mockBackend struct {
	mu sync.Mutex

	FetchDocumentsFunc      func(ctx context.Context) ([]domain.Document, error)
	PersistKeywordsFunc     func(ctx context.Context, doc *domain.Document) error
	UploadDocumentFunc      func(ctx context.Context, name string, content io.Reader) (*domain.Document, error)
	DownloadDocumentsFunc   func(ctx context.Context, ids []string, w io.Writer) error
	FetchKeywordCatalogFunc func(ctx context.Context) ([]domain.KeywordCatalogEntry, error)
	FetchKeywordModelsFunc  func(ctx context.Context) ([]domain.KeywordModel, error)
	SubmitTaggingFunc       func(ctx context.Context, req domain.TaggingRequest) (*domain.TaggingResponse, error)
	HealthFunc              func(ctx context.Context) (string, error)

	persisted []domain.Document
	submitted []domain.TaggingRequest
}

var _ driven.Backend = (*mockBackend)(nil)

func (m *mockBackend) FetchDocuments(ctx context.Context) ([]domain.Document, error) {
	if m.FetchDocumentsFunc != nil {
		return m.FetchDocumentsFunc(ctx)
	}
	return nil, nil
}

func (m *mockBackend) PersistKeywords(ctx context.Context, doc *domain.Document) error {
	m.mu.Lock()
	m.persisted = append(m.persisted, doc.Clone())
	m.mu.Unlock()
	if m.PersistKeywordsFunc != nil {
		return m.PersistKeywordsFunc(ctx, doc)
	}
	return nil
}

func (m *mockBackend) UploadDocument(ctx context.Context, name string, content io.Reader) (*domain.Document, error) {
	if m.UploadDocumentFunc != nil {
		return m.UploadDocumentFunc(ctx, name, content)
	}
	return &domain.Document{ID: name, Title: name}, nil
}

func (m *mockBackend) DownloadDocuments(ctx context.Context, ids []string, w io.Writer) error {
	if m.DownloadDocumentsFunc != nil {
		return m.DownloadDocumentsFunc(ctx, ids, w)
	}
	return nil
}

func (m *mockBackend) FetchKeywordCatalog(ctx context.Context) ([]domain.KeywordCatalogEntry, error) {
	if m.FetchKeywordCatalogFunc != nil {
		return m.FetchKeywordCatalogFunc(ctx)
	}
	return nil, nil
}

func (m *mockBackend) FetchKeywordModels(ctx context.Context) ([]domain.KeywordModel, error) {
	if m.FetchKeywordModelsFunc != nil {
		return m.FetchKeywordModelsFunc(ctx)
	}
	return nil, nil
}

func (m *mockBackend) SubmitTagging(ctx context.Context, req domain.TaggingRequest) (*domain.TaggingResponse, error) {
	m.mu.Lock()
	m.submitted = append(m.submitted, req)
	m.mu.Unlock()
	if m.SubmitTaggingFunc != nil {
		return m.SubmitTaggingFunc(ctx, req)
	}
	return &domain.TaggingResponse{Status: 200}, nil
}

func (m *mockBackend) Health(ctx context.Context) (string, error) {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return "UP", nil
}

func (m *mockBackend) persistedDocs() []domain.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Document, len(m.persisted))
	copy(out, m.persisted)
	return out
}

// recordingNotifier collects notifications.
type recordingNotifier struct {
	mu    sync.Mutex
	items []domain.Notification
}

func (n *recordingNotifier) Notify(item domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, item)
}

func (n *recordingNotifier) all() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.Notification, len(n.items))
	copy(out, n.items)
	return out
}

func (n *recordingNotifier) count(level domain.NotificationLevel) int {
	c := 0
	for _, item := range n.all() {
		if item.Level == level {
			c++
		}
	}
	return c
}

// recordingMetrics counts observations.
type recordingMetrics struct {
	mu        sync.Mutex
	merged    map[string]int
	removed   int
	persistOK int
	persistKO int
	submitted []int
	refreshes int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{merged: make(map[string]int)}
}

func (m *recordingMetrics) KeywordMerged(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.merged[outcome]++
}

func (m *recordingMetrics) KeywordRemoved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed++
}

func (m *recordingMetrics) PersistObserved(ok bool, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.persistOK++
	} else {
		m.persistKO++
	}
}

func (m *recordingMetrics) TaggingSubmitted(_ string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitted = append(m.submitted, status)
}

func (m *recordingMetrics) RefreshObserved(_ bool, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshes++
}

func kw(value string) domain.Keyword {
	return domain.Keyword{Value: value, Type: domain.KeywordManual}
}

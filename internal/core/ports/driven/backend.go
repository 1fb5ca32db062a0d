package driven

import (
	"context"
	"io"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

// DocumentBackend is the server side of the document table.
type DocumentBackend interface {
	// FetchDocuments returns the full document collection.
	FetchDocuments(ctx context.Context) ([]domain.Document, error)

	// PersistKeywords overwrites the server's keyword set for doc.ID with doc.Keywords.
	PersistKeywords(ctx context.Context, doc *domain.Document) error

	// UploadDocument stores a new file and returns the created document record.
	UploadDocument(ctx context.Context, name string, content io.Reader) (*domain.Document, error)

	// DownloadDocuments writes the requested documents to w.
	// A single id yields the raw file, several ids yield a zip archive.
	DownloadDocuments(ctx context.Context, ids []string, w io.Writer) error
}

// KeywordBackend serves the keyword reference data.
type KeywordBackend interface {
	// FetchKeywordCatalog returns every known keyword entry.
	FetchKeywordCatalog(ctx context.Context) ([]domain.KeywordCatalogEntry, error)

	// FetchKeywordModels returns the predefined keyword models.
	FetchKeywordModels(ctx context.Context) ([]domain.KeywordModel, error)
}

// TaggingBackend runs tagging methods on the server.
type TaggingBackend interface {
	// SubmitTagging submits the request. A transport failure is returned as an
	// error; any HTTP reply, successful or not, is returned as a response.
	SubmitTagging(ctx context.Context, req domain.TaggingRequest) (*domain.TaggingResponse, error)
}

// HealthChecker reports backend liveness.
type HealthChecker interface {
	// Health returns the status string reported by the backend (e.g. "UP").
	Health(ctx context.Context) (string, error)
}

// Backend aggregates every backend capability.
// The HTTP adapter implements all of them.
type Backend interface {
	DocumentBackend
	KeywordBackend
	TaggingBackend
	HealthChecker
}

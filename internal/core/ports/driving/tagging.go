package driving

import (
	"context"
	"io"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

// TaggingService applies and removes keywords and runs tagging methods.
type TaggingService interface {
	// Refresh re-fetches the document collection and replaces the table data.
	Refresh(ctx context.Context) error

	// ApplyKeyword merges the entry and its parents into one document and persists it.
	ApplyKeyword(ctx context.Context, documentID string, entry domain.KeywordCatalogEntry) (*ApplyResult, error)

	// ApplyBulkKeywords applies the entry to every selected document independently.
	ApplyBulkKeywords(ctx context.Context, entry domain.KeywordCatalogEntry) (*BulkResult, error)

	// RemoveKeyword removes a keyword value from a document and persists it.
	RemoveKeyword(ctx context.Context, documentID, value string) (*ApplyResult, error)

	// ApplyTaggingMethod submits a tagging request and refreshes on success.
	// An empty request document list targets the current selection.
	ApplyTaggingMethod(ctx context.Context, req domain.TaggingRequest) (*domain.TaggingResponse, error)

	// Upload stores a new document and appends it to the table.
	Upload(ctx context.Context, name string, content io.Reader) (*domain.Document, error)

	// Download writes the given documents to w.
	Download(ctx context.Context, ids []string, w io.Writer) error

	// Busy reports whether a tagging submission is outstanding.
	Busy() bool
}

// ApplyResult is the outcome of a keyword change on a single document.
type ApplyResult struct {
	// Document is the local document after the change.
	Document domain.Document

	// Added lists keyword values newly attached.
	Added []string

	// Removed lists keyword values detached.
	Removed []string

	// Duplicates lists keyword values rejected because they were already attached.
	Duplicates []string

	// Persisted is true when the backend confirmed the change.
	Persisted bool

	// Discarded is true when the confirmation arrived after a newer refresh
	// and was not written back to the table.
	Discarded bool
}

// Changed reports whether the local document was modified.
func (r *ApplyResult) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}

// BulkResult collects the per-document outcomes of a bulk apply.
type BulkResult struct {
	// Results holds one entry per targeted document, in selection order.
	Results []BulkItem
}

// BulkItem is the outcome for one document of a bulk apply.
type BulkItem struct {
	DocumentID string
	Result     *ApplyResult
	Err        error
}

// Failed returns the items whose application failed.
func (r *BulkResult) Failed() []BulkItem {
	var failed []BulkItem
	for _, item := range r.Results {
		if item.Err != nil {
			failed = append(failed, item)
		}
	}
	return failed
}

// Succeeded returns the number of items applied and persisted without error.
func (r *BulkResult) Succeeded() int {
	n := 0
	for _, item := range r.Results {
		if item.Err == nil {
			n++
		}
	}
	return n
}

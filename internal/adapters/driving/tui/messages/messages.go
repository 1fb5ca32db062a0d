// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewDocuments is the document table.
	ViewDocuments ViewType = iota
	// ViewKeywords is the keyword picker.
	ViewKeywords
	// ViewTagging chooses and submits a tagging method.
	ViewTagging
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewDocuments:
		return "documents"
	case ViewKeywords:
		return "keywords"
	case ViewTagging:
		return "tagging"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DocumentsLoaded signals the table data was fetched or restored.
type DocumentsLoaded struct {
	Err error
}

// CatalogLoaded signals the keyword catalog and models were fetched.
type CatalogLoaded struct {
	Err error
}

// PickKeyword opens the keyword picker. An empty DocumentID targets the
// selection.
type PickKeyword struct {
	DocumentID string
}

// KeywordPicked carries the catalog entry chosen in the picker.
type KeywordPicked struct {
	Entry      domain.KeywordCatalogEntry
	DocumentID string
}

// RemoveKeywordRequested asks to detach a keyword from a document.
type RemoveKeywordRequested struct {
	DocumentID string
	Value      string
}

// KeywordApplied carries the outcome of a single-document keyword change.
type KeywordApplied struct {
	Result *driving.ApplyResult
	Err    error
}

// BulkApplied carries the outcome of a bulk apply over the selection.
type BulkApplied struct {
	Result *driving.BulkResult
	Err    error
}

// TaggingRequested asks to submit a tagging method over the selection.
type TaggingRequested struct {
	Method domain.TaggingMethod
	Model  *domain.KeywordModel
}

// TaggingSubmitted carries the backend reply to a tagging submission.
type TaggingSubmitted struct {
	Response *domain.TaggingResponse
	Err      error
}

// NotificationReceived carries a notification raised by the core.
type NotificationReceived struct {
	Notification domain.Notification
}

// NotificationExpired clears the status line if Seq still matches the
// notification on display.
type NotificationExpired struct {
	Seq int
}

// RefreshRequested asks to re-fetch the documents from the server.
type RefreshRequested struct{}

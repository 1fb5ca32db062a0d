package driving

import (
	"context"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

// TableView is the filtered, sorted projection of the document collection
// together with the row selection.
type TableView interface {
	// Rows returns the documents passing the current filter, in sort order.
	Rows() []domain.Document

	// Matching returns the documents matching term in the current sort order
	// without changing the filter.
	Matching(term string) []domain.Document

	// All returns every document in backing order.
	All() []domain.Document

	// Get returns a copy of the document with the given id.
	Get(id string) (domain.Document, bool)

	// SetFilter changes the filter term.
	SetFilter(term string)

	// SetSort changes the sort column and direction.
	SetSort(column domain.SortColumn, descending bool)

	// State returns the current filter and sort choice.
	State() domain.ViewState

	// Unsynced returns the rows whose last keyword update was not persisted.
	Unsynced() map[string]domain.UnsyncedRow

	// IsSelected reports whether a row is selected.
	IsSelected(id string) bool

	// ToggleSelected flips the selection of a single row.
	ToggleSelected(id string)

	// IsAllSelected reports whether every visible row is selected.
	IsAllSelected() bool

	// ToggleAll selects every visible row, or clears the whole selection when
	// every visible row is already selected.
	ToggleAll()

	// Selected returns the selected documents in selection order.
	Selected() []domain.Document

	// ClearSelection empties the selection.
	ClearSelection()
}

// KeywordCatalog provides keyword suggestions.
type KeywordCatalog interface {
	// Load fetches the catalog and keyword models from the backend.
	Load(ctx context.Context) error

	// Entries returns every entry in catalog order.
	Entries() []domain.KeywordCatalogEntry

	// Search returns entries whose id starts with term, ignoring case.
	Search(term string) []domain.KeywordCatalogEntry

	// Entry looks up an entry by id.
	Entry(id string) (domain.KeywordCatalogEntry, bool)

	// Models returns the loaded keyword models.
	Models() []domain.KeywordModel

	// Model looks up a keyword model by id.
	Model(id string) (domain.KeywordModel, bool)
}

package services

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driving"
)

// Ensure DocumentTableView implements the interface.
var _ driving.TableView = (*DocumentTableView)(nil)

// DocumentTableView is the filtered, sortable projection of the document
// collection. It owns the documents and the row selection.
type DocumentTableView struct {
	mu       sync.RWMutex
	docs     []domain.Document
	state    domain.ViewState
	unsynced map[string]domain.UnsyncedRow
	revision uint64
	now      func() time.Time

	selection *SelectionSet
}

// NewDocumentTableView creates an empty table with an empty selection.
func NewDocumentTableView() *DocumentTableView {
	return &DocumentTableView{
		unsynced:  make(map[string]domain.UnsyncedRow),
		now:       time.Now,
		selection: NewSelectionSet(),
	}
}

// Selection returns the row selection.
func (v *DocumentTableView) Selection() *SelectionSet {
	return v.selection
}

// SetDocuments replaces the backing collection.
// Creation dates are normalised to UTC and the unsynced markers are dropped,
// since the new collection is the server's state.
func (v *DocumentTableView) SetDocuments(docs []domain.Document) {
	next := make([]domain.Document, len(docs))
	for i := range docs {
		next[i] = docs[i].Clone()
		next[i].CreationDate = next[i].CreationDate.UTC()
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.docs = next
	v.unsynced = make(map[string]domain.UnsyncedRow)
	v.revision++
}

// MatchesFilter reports whether doc matches term. A document matches if term
// is a case-sensitive substring of its title, language, decimal size or type,
// or of any keyword value. An empty term matches everything.
func MatchesFilter(doc *domain.Document, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(doc.Title, term) ||
		strings.Contains(doc.Language, term) ||
		strings.Contains(strconv.FormatInt(doc.Size, 10), term) ||
		strings.Contains(doc.Type, term) {
		return true
	}
	for i := range doc.Keywords {
		if strings.Contains(doc.Keywords[i].Value, term) {
			return true
		}
	}
	return false
}

// Rows returns copies of the documents passing the filter, in sort order.
func (v *DocumentTableView) Rows() []domain.Document {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.rows(v.state.Filter)
}

// Matching returns the documents matching term in the current sort order.
// The table filter is left unchanged.
func (v *DocumentTableView) Matching(term string) []domain.Document {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.rows(term)
}

func (v *DocumentTableView) rows(term string) []domain.Document {
	out := make([]domain.Document, 0, len(v.docs))
	for i := range v.docs {
		if MatchesFilter(&v.docs[i], term) {
			out = append(out, v.docs[i].Clone())
		}
	}
	if v.state.SortColumn != domain.SortNone {
		less := columnLess(v.state.SortColumn)
		desc := v.state.Descending
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return less(&out[j], &out[i])
			}
			return less(&out[i], &out[j])
		})
	}
	return out
}

func columnLess(column domain.SortColumn) func(a, b *domain.Document) bool {
	switch column {
	case domain.SortType:
		return func(a, b *domain.Document) bool { return a.Type < b.Type }
	case domain.SortLanguage:
		return func(a, b *domain.Document) bool { return a.Language < b.Language }
	case domain.SortSize:
		return func(a, b *domain.Document) bool { return a.Size < b.Size }
	case domain.SortCreationDate:
		return func(a, b *domain.Document) bool { return a.CreationDate.Before(b.CreationDate) }
	default:
		return func(a, b *domain.Document) bool { return a.Title < b.Title }
	}
}

// All returns copies of every document in backing order.
func (v *DocumentTableView) All() []domain.Document {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]domain.Document, len(v.docs))
	for i := range v.docs {
		out[i] = v.docs[i].Clone()
	}
	return out
}

// Len returns the size of the backing collection.
func (v *DocumentTableView) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.docs)
}

// Get returns a copy of the document with the given id.
func (v *DocumentTableView) Get(id string) (domain.Document, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	idx := v.indexOf(id)
	if idx < 0 {
		return domain.Document{}, false
	}
	return v.docs[idx].Clone(), true
}

func (v *DocumentTableView) indexOf(id string) int {
	for i := range v.docs {
		if v.docs[i].ID == id {
			return i
		}
	}
	return -1
}

// SetFilter changes the filter term.
func (v *DocumentTableView) SetFilter(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Filter = term
	v.revision++
}

// Filter returns the current filter term.
func (v *DocumentTableView) Filter() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state.Filter
}

// SetSort changes the sort column. An empty column keeps backing order.
// Unknown columns are ignored.
func (v *DocumentTableView) SetSort(column domain.SortColumn, descending bool) {
	if !column.Valid() {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.SortColumn = column
	v.state.Descending = descending
	v.revision++
}

// State returns the current filter and sort choice.
func (v *DocumentTableView) State() domain.ViewState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// SetState restores a saved filter and sort choice.
func (v *DocumentTableView) SetState(state domain.ViewState) {
	if !state.SortColumn.Valid() {
		state.SortColumn = domain.SortNone
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = state
	v.revision++
}

// Replace swaps the stored document with the same id for doc, keeping its
// position. It reports whether the id was found.
func (v *DocumentTableView) Replace(doc domain.Document) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	idx := v.indexOf(doc.ID)
	if idx < 0 {
		return false
	}
	v.docs[idx] = doc.Clone()
	v.revision++
	return true
}

// Append adds a document at the end of the collection.
// A document whose id is already present replaces the existing row instead.
func (v *DocumentTableView) Append(doc domain.Document) {
	doc = doc.Clone()
	doc.CreationDate = doc.CreationDate.UTC()

	v.mu.Lock()
	defer v.mu.Unlock()

	if idx := v.indexOf(doc.ID); idx >= 0 {
		v.docs[idx] = doc
	} else {
		v.docs = append(v.docs, doc)
	}
	v.revision++
}

// Remove deletes a document and its selection.
func (v *DocumentTableView) Remove(id string) bool {
	v.mu.Lock()
	idx := v.indexOf(id)
	if idx >= 0 {
		v.docs = append(v.docs[:idx], v.docs[idx+1:]...)
		delete(v.unsynced, id)
		v.revision++
	}
	v.mu.Unlock()

	if idx < 0 {
		return false
	}
	v.selection.Deselect(id)
	return true
}

// Mutate runs fn on the stored document under the write lock and returns a
// copy of the result. fn reports whether it changed the document.
func (v *DocumentTableView) Mutate(id string, fn func(doc *domain.Document) bool) (domain.Document, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	idx := v.indexOf(id)
	if idx < 0 {
		return domain.Document{}, domain.ErrNotFound
	}
	if fn(&v.docs[idx]) {
		v.revision++
	}
	return v.docs[idx].Clone(), nil
}

// MarkUnsynced flags a row whose keyword change was not persisted.
func (v *DocumentTableView) MarkUnsynced(id string, cause error) domain.UnsyncedRow {
	row := domain.UnsyncedRow{DocumentID: id, Since: v.now().UTC()}
	if cause != nil {
		row.Reason = cause.Error()
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.unsynced[id] = row
	v.revision++
	return row
}

// MarkSynced clears the unsynced flag of a row.
func (v *DocumentTableView) MarkSynced(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.unsynced[id]; !ok {
		return false
	}
	delete(v.unsynced, id)
	v.revision++
	return true
}

// RestoreUnsynced installs previously saved unsynced markers for rows that exist.
func (v *DocumentTableView) RestoreUnsynced(rows []domain.UnsyncedRow) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, row := range rows {
		if v.indexOf(row.DocumentID) >= 0 {
			v.unsynced[row.DocumentID] = row
		}
	}
	v.revision++
}

// Unsynced returns a copy of the unsynced markers keyed by document id.
func (v *DocumentTableView) Unsynced() map[string]domain.UnsyncedRow {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make(map[string]domain.UnsyncedRow, len(v.unsynced))
	for id, row := range v.unsynced {
		out[id] = row
	}
	return out
}

// Revision increases on every change visible to renderers.
func (v *DocumentTableView) Revision() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.revision
}

// IsSelected reports whether a row is selected.
func (v *DocumentTableView) IsSelected(id string) bool {
	return v.selection.Contains(id)
}

// ToggleSelected flips the selection of one row.
func (v *DocumentTableView) ToggleSelected(id string) {
	v.selection.Toggle(id)
}

// IsAllSelected reports whether every row passing the filter is selected.
func (v *DocumentTableView) IsAllSelected() bool {
	return v.selection.IsAllSelected(v.Rows())
}

// ToggleAll toggles the selection against the rows passing the filter.
func (v *DocumentTableView) ToggleAll() {
	v.selection.ToggleAll(v.Rows())
}

// Selected returns the selected documents in selection order.
// Selected ids no longer in the collection are skipped.
func (v *DocumentTableView) Selected() []domain.Document {
	ids := v.selection.IDs()

	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]domain.Document, 0, len(ids))
	for _, id := range ids {
		if idx := v.indexOf(id); idx >= 0 {
			out = append(out, v.docs[idx].Clone())
		}
	}
	return out
}

// ClearSelection empties the selection.
func (v *DocumentTableView) ClearSelection() {
	v.selection.Clear()
}

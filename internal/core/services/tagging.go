package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driven"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driving"
	"github.com/Alma-hanif/infinitag/internal/logger"
)

// Ensure TagApplicationWorkflow implements the interface.
var (
	_ driving.TaggingService   = (*TagApplicationWorkflow)(nil)
	_ driving.WorkspaceService = (*TagApplicationWorkflow)(nil)
)

// DefaultBulkConcurrency bounds concurrent persistence calls in a bulk apply.
const DefaultBulkConcurrency = 4

// TagApplicationWorkflow applies keywords to documents, persists them and
// keeps the table consistent with what the server confirmed.
type TagApplicationWorkflow struct {
	view      *DocumentTableView
	documents driven.DocumentBackend
	tagging   driven.TaggingBackend
	notifier  driven.Notifier
	merger    *TagMerger

	// Optional collaborators.
	workspace   driven.WorkspaceStore
	exporter    driven.DocumentExporter
	metrics     driven.MetricsRecorder
	newJobID    func() string
	concurrency int

	// refreshes numbers every refresh as it starts. epoch is the number of
	// the refresh whose documents the view currently holds; it only moves
	// under commitMu, when a refresh writes its data. A change begun under an
	// older epoch is not written back to the view.
	refreshes atomic.Uint64
	epoch     atomic.Uint64
	busy      atomic.Bool

	// commitMu serialises epoch checks with view write-backs.
	commitMu sync.Mutex
}

// NewTagApplicationWorkflow creates a workflow over the given table.
// notifier may be nil.
func NewTagApplicationWorkflow(
	view *DocumentTableView,
	documents driven.DocumentBackend,
	tagging driven.TaggingBackend,
	notifier driven.Notifier,
) *TagApplicationWorkflow {
	return &TagApplicationWorkflow{
		view:        view,
		documents:   documents,
		tagging:     tagging,
		notifier:    notifier,
		merger:      NewTagMerger(notifier),
		metrics:     driven.NopMetrics{},
		concurrency: DefaultBulkConcurrency,
	}
}

// SetWorkspace attaches a store that records unsynced rows and table state.
func (w *TagApplicationWorkflow) SetWorkspace(store driven.WorkspaceStore) {
	w.workspace = store
}

// SetMetrics attaches a metrics recorder. A nil recorder disables metrics.
func (w *TagApplicationWorkflow) SetMetrics(m driven.MetricsRecorder) {
	if m == nil {
		m = driven.NopMetrics{}
	}
	w.metrics = m
}

// SetJobIDGenerator sets the function used to fill empty tagging job ids.
func (w *TagApplicationWorkflow) SetJobIDGenerator(fn func() string) {
	w.newJobID = fn
}

// SetConcurrency bounds concurrent persistence calls in bulk applies.
// Values below one are ignored.
func (w *TagApplicationWorkflow) SetConcurrency(n int) {
	if n >= 1 {
		w.concurrency = n
	}
}

// View returns the table the workflow operates on.
func (w *TagApplicationWorkflow) View() *DocumentTableView {
	return w.view
}

// Busy reports whether a tagging submission is outstanding.
func (w *TagApplicationWorkflow) Busy() bool {
	return w.busy.Load()
}

// Epoch returns the number of the refresh whose documents are on display.
func (w *TagApplicationWorkflow) Epoch() uint64 {
	return w.epoch.Load()
}

// Refresh fetches the document collection and replaces the table data.
// If a refresh started later has already replaced the data, the response is
// dropped and ErrStaleResponse returned. A failed fetch leaves the epoch
// untouched, so in-flight changes still reconcile normally.
func (w *TagApplicationWorkflow) Refresh(ctx context.Context) error {
	epoch := w.refreshes.Add(1)
	logger.Debug("Refreshing documents (epoch %d)", epoch)

	docs, err := w.documents.FetchDocuments(ctx)
	w.metrics.RefreshObserved(err == nil, len(docs))
	if err != nil {
		logger.Warn("Fetching documents failed: %v", err)
		return fmt.Errorf("fetch documents: %w", err)
	}

	w.commitMu.Lock()
	if w.epoch.Load() > epoch {
		w.commitMu.Unlock()
		logger.Debug("Dropping documents from epoch %d", epoch)
		return domain.ErrStaleResponse
	}
	w.epoch.Store(epoch)
	w.view.SetDocuments(docs)
	w.commitMu.Unlock()

	if w.workspace != nil {
		if err := w.workspace.ClearAllUnsynced(ctx); err != nil {
			logger.Warn("Clearing unsynced rows failed: %v", err)
		}
	}

	logger.Debug("Loaded %d documents", len(docs))
	return nil
}

// pendingChange is a local keyword change waiting to be persisted.
type pendingChange struct {
	epoch  uint64
	doc    domain.Document
	result *driving.ApplyResult
}

// ApplyKeyword merges entry and its parents into one document and persists
// the resulting keyword set. A persistence failure keeps the local change,
// marks the row unsynced and returns a *domain.PersistenceError together
// with the result.
func (w *TagApplicationWorkflow) ApplyKeyword(
	ctx context.Context,
	documentID string,
	entry domain.KeywordCatalogEntry,
) (*driving.ApplyResult, error) {
	change, err := w.merge(documentID, entry)
	if err != nil {
		return nil, err
	}
	return w.persist(ctx, change)
}

// merge runs the keyword merge on the stored document under the view lock.
func (w *TagApplicationWorkflow) merge(documentID string, entry domain.KeywordCatalogEntry) (*pendingChange, error) {
	if entry.ID == "" {
		return nil, fmt.Errorf("%w: empty keyword", domain.ErrInvalidInput)
	}

	epoch := w.epoch.Load()
	var report MergeReport
	doc, err := w.view.Mutate(documentID, func(d *domain.Document) bool {
		report = w.merger.MergeWithAncestors(d, entry)
		return len(report.Added) > 0
	})
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", documentID, err)
	}

	for range report.Added {
		w.metrics.KeywordMerged("added")
	}
	for range report.Duplicates {
		w.metrics.KeywordMerged("duplicate")
	}

	return &pendingChange{
		epoch: epoch,
		doc:   doc,
		result: &driving.ApplyResult{
			Document:   doc,
			Added:      report.Added,
			Duplicates: report.Duplicates,
		},
	}, nil
}

// persist sends the keyword set of a pending change and reconciles the view.
func (w *TagApplicationWorkflow) persist(ctx context.Context, change *pendingChange) (*driving.ApplyResult, error) {
	doc := change.doc
	result := change.result

	start := time.Now()
	err := w.documents.PersistKeywords(ctx, &doc)
	w.metrics.PersistObserved(err == nil, time.Since(start))

	w.commitMu.Lock()
	stale := w.epoch.Load() != change.epoch
	if stale {
		w.commitMu.Unlock()
		result.Discarded = true
		logger.Debug("Discarding persistence response for %s from epoch %d", doc.ID, change.epoch)
		if err != nil {
			return result, &domain.PersistenceError{DocumentID: doc.ID, Err: err}
		}
		result.Persisted = true
		return result, nil
	}

	if err != nil {
		row := w.view.MarkUnsynced(doc.ID, err)
		w.commitMu.Unlock()

		logger.Warn("Persisting keywords of %s failed: %v", doc.ID, err)
		w.notify(domain.Notification{
			Level:      domain.NotifyError,
			Message:    fmt.Sprintf("Keywords of %s were not saved", doc.DisplayTitle()),
			DocumentID: doc.ID,
			Err:        err,
		})
		if w.workspace != nil {
			if werr := w.workspace.MarkUnsynced(ctx, row); werr != nil {
				logger.Warn("Recording unsynced row %s failed: %v", doc.ID, werr)
			}
		}
		return result, &domain.PersistenceError{DocumentID: doc.ID, Err: err}
	}

	// A later change to the same row may already be in flight; its own
	// response will reconcile the row.
	if current, ok := w.view.Get(doc.ID); ok && keywordsEqual(current.Keywords, doc.Keywords) {
		w.view.Replace(doc)
		w.view.MarkSynced(doc.ID)
	}
	w.commitMu.Unlock()

	if w.workspace != nil {
		if werr := w.workspace.ClearUnsynced(ctx, doc.ID); werr != nil {
			logger.Warn("Clearing unsynced row %s failed: %v", doc.ID, werr)
		}
	}

	result.Persisted = true
	return result, nil
}

// ApplyBulkKeywords applies entry to every selected document.
// All merges run first, in selection order. Persistence then runs
// concurrently and each document succeeds or fails on its own.
// An empty selection notifies the user and returns ErrNoSelection.
func (w *TagApplicationWorkflow) ApplyBulkKeywords(ctx context.Context, entry domain.KeywordCatalogEntry) (*driving.BulkResult, error) {
	ids := w.view.Selection().IDs()
	if len(ids) == 0 {
		w.notify(domain.Notification{
			Level:   domain.NotifyWarning,
			Message: "Please select at least one document",
			Err:     domain.ErrNoSelection,
		})
		return nil, domain.ErrNoSelection
	}

	logger.Section("Bulk apply")
	logger.Debug("Applying %q to %d documents", entry.ID, len(ids))

	result := &driving.BulkResult{Results: make([]driving.BulkItem, len(ids))}
	changes := make([]*pendingChange, len(ids))
	for i, id := range ids {
		result.Results[i].DocumentID = id
		change, err := w.merge(id, entry)
		if err != nil {
			result.Results[i].Err = err
			continue
		}
		changes[i] = change
	}

	sem := make(chan struct{}, w.concurrency)
	var wg sync.WaitGroup
	for i, change := range changes {
		if change == nil {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, change *pendingChange) {
			defer wg.Done()
			defer func() { <-sem }()
			res, err := w.persist(ctx, change)
			result.Results[i].Result = res
			result.Results[i].Err = err
		}(i, change)
	}
	wg.Wait()

	logger.Debug("Bulk apply finished: %d succeeded, %d failed", result.Succeeded(), len(result.Failed()))
	return result, nil
}

// RemoveKeyword detaches value from a document and persists the result.
// Removing a value that is not attached does nothing and persists nothing.
func (w *TagApplicationWorkflow) RemoveKeyword(ctx context.Context, documentID, value string) (*driving.ApplyResult, error) {
	epoch := w.epoch.Load()
	var removed bool
	doc, err := w.view.Mutate(documentID, func(d *domain.Document) bool {
		removed = RemoveKeyword(d, value)
		return removed
	})
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", documentID, err)
	}

	result := &driving.ApplyResult{Document: doc}
	if !removed {
		logger.Debug("Keyword %q not attached to %s", value, documentID)
		return result, nil
	}
	result.Removed = []string{value}
	w.metrics.KeywordRemoved()

	return w.persist(ctx, &pendingChange{epoch: epoch, doc: doc, result: result})
}

// ApplyTaggingMethod submits a tagging request. Only a 200 response refreshes
// the table. The selection is cleared and the busy flag released whatever
// the outcome. A request with no documents and an empty selection is never
// submitted: it gets a warning notification and ErrNoSelection, the same
// as a bulk apply.
func (w *TagApplicationWorkflow) ApplyTaggingMethod(ctx context.Context, req domain.TaggingRequest) (*domain.TaggingResponse, error) {
	if req.Method.Type == domain.KeywordModelType && req.KeywordModel == nil {
		return nil, fmt.Errorf("%w: method %q requires a keyword model", domain.ErrInvalidInput, req.Method.Name)
	}
	if !w.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrTaggingInProgress
	}
	defer func() {
		w.view.ClearSelection()
		w.busy.Store(false)
	}()

	if len(req.Documents) == 0 {
		req.Documents = w.view.Selected()
	}
	if len(req.Documents) == 0 {
		w.notify(domain.Notification{
			Level:   domain.NotifyWarning,
			Message: "Please select at least one document",
			Err:     domain.ErrNoSelection,
		})
		return nil, domain.ErrNoSelection
	}
	if req.JobID == "" && w.newJobID != nil {
		req.JobID = w.newJobID()
	}

	logger.Section("Tagging")
	logger.Debug("Submitting %s job %s for %d documents", req.Method.Name, req.JobID, len(req.Documents))

	resp, err := w.tagging.SubmitTagging(ctx, req)
	if err != nil {
		w.metrics.TaggingSubmitted(string(req.Method.Type), 0)
		logger.Warn("Tagging submission failed: %v", err)
		w.notify(domain.Notification{Level: domain.NotifyError, Message: "Tagging could not be submitted", Err: err})
		return nil, fmt.Errorf("submit tagging: %w", err)
	}
	w.metrics.TaggingSubmitted(string(req.Method.Type), resp.Status)

	if !resp.OK() {
		subErr := &domain.TaggingSubmissionError{Status: resp.Status, Message: resp.Message}
		logger.Warn("Tagging rejected: %v", subErr)
		w.notify(domain.Notification{Level: domain.NotifyWarning, Message: subErr.Error(), Err: subErr})
		return resp, subErr
	}

	if err := w.Refresh(ctx); err != nil {
		return resp, fmt.Errorf("refresh after tagging: %w", err)
	}
	w.notify(domain.Notification{Level: domain.NotifyInfo, Message: "Tagging applied"})
	return resp, nil
}

// Upload stores a new document and appends it to the table.
func (w *TagApplicationWorkflow) Upload(ctx context.Context, name string, content io.Reader) (*domain.Document, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty file name", domain.ErrInvalidInput)
	}
	doc, err := w.documents.UploadDocument(ctx, name, content)
	if err != nil {
		logger.Warn("Uploading %s failed: %v", name, err)
		return nil, fmt.Errorf("upload %s: %w", name, err)
	}
	w.view.Append(*doc)
	logger.Debug("Uploaded %s as %s", name, doc.ID)
	return doc, nil
}

// Download writes the given documents to out.
func (w *TagApplicationWorkflow) Download(ctx context.Context, ids []string, out io.Writer) error {
	if len(ids) == 0 {
		return domain.ErrNoSelection
	}
	if err := w.documents.DownloadDocuments(ctx, ids, out); err != nil {
		return fmt.Errorf("download: %w", err)
	}
	return nil
}

// SaveWorkspace stores the table snapshot, selection and view state.
// It does nothing without a workspace store.
func (w *TagApplicationWorkflow) SaveWorkspace(ctx context.Context) error {
	if w.workspace == nil {
		return nil
	}
	return errors.Join(
		w.workspace.SaveSnapshot(ctx, w.view.All()),
		w.workspace.SaveSelection(ctx, w.view.Selection().IDs()),
		w.workspace.SaveViewState(ctx, w.view.State()),
	)
}

// RestoreWorkspace loads the stored table state into the view.
// It reports whether a non-empty snapshot was found.
func (w *TagApplicationWorkflow) RestoreWorkspace(ctx context.Context) (bool, error) {
	if w.workspace == nil {
		return false, nil
	}

	docs, err := w.workspace.LoadSnapshot(ctx)
	if err != nil {
		return false, fmt.Errorf("load snapshot: %w", err)
	}
	if len(docs) == 0 {
		return false, nil
	}
	w.view.SetDocuments(docs)

	state, err := w.workspace.LoadViewState(ctx)
	if err != nil {
		return true, fmt.Errorf("load view state: %w", err)
	}
	w.view.SetState(state)

	ids, err := w.workspace.LoadSelection(ctx)
	if err != nil {
		return true, fmt.Errorf("load selection: %w", err)
	}
	w.view.ClearSelection()
	w.view.Selection().Select(ids...)

	rows, err := w.workspace.ListUnsynced(ctx)
	if err != nil {
		return true, fmt.Errorf("list unsynced: %w", err)
	}
	w.view.RestoreUnsynced(rows)
	return true, nil
}

func (w *TagApplicationWorkflow) notify(n domain.Notification) {
	if w.notifier != nil {
		w.notifier.Notify(n)
	}
}

func keywordsEqual(a, b []domain.Keyword) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

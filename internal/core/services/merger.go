package services

import (
	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driven"
	"github.com/Alma-hanif/infinitag/internal/logger"
)

// MergeOne attaches a keyword to a document.
// It fails with a *domain.DuplicateKeywordError if a keyword with the same
// value (exact, case-sensitive) is already attached, whatever its type.
// Otherwise the keyword is inserted and the keywords are re-sorted by value.
// Only doc.Keywords is modified.
func MergeOne(doc *domain.Document, kw domain.Keyword) error {
	if doc.HasKeyword(kw.Value) {
		return &domain.DuplicateKeywordError{Value: kw.Value, DocumentTitle: doc.DisplayTitle()}
	}
	doc.Keywords = append(doc.Keywords, kw)
	doc.SortKeywords()
	return nil
}

// RemoveKeyword detaches the first keyword with the given value.
// It reports whether a keyword was removed.
func RemoveKeyword(doc *domain.Document, value string) bool {
	idx := doc.KeywordIndex(value)
	if idx < 0 {
		return false
	}
	doc.Keywords = append(doc.Keywords[:idx:idx], doc.Keywords[idx+1:]...)
	return true
}

// MergeReport lists what a multi-keyword merge did.
type MergeReport struct {
	// Added lists the values inserted, in application order.
	Added []string

	// Duplicates lists the values rejected as already present.
	Duplicates []string
}

// TagMerger merges catalog entries, with their ancestors, into documents.
type TagMerger struct {
	notifier driven.Notifier
}

// NewTagMerger creates a merger reporting rejections to notifier.
// notifier may be nil.
func NewTagMerger(notifier driven.Notifier) *TagMerger {
	return &TagMerger{notifier: notifier}
}

// MergeWithAncestors merges entry.ID followed by entry.Parents into doc as
// manual keywords. Every duplicate is reported on its own and does not stop
// the remaining merges, so ancestors not yet present are still added.
func (m *TagMerger) MergeWithAncestors(doc *domain.Document, entry domain.KeywordCatalogEntry) MergeReport {
	var report MergeReport
	for _, id := range entry.ApplyIDs() {
		err := MergeOne(doc, domain.Keyword{Value: id, Type: domain.KeywordManual})
		if err != nil {
			report.Duplicates = append(report.Duplicates, id)
			logger.Debug("Merge into %s: %v", doc.ID, err)
			m.notify(domain.Notification{
				Level:      domain.NotifyWarning,
				Message:    err.Error(),
				DocumentID: doc.ID,
				Err:        err,
			})
			continue
		}
		report.Added = append(report.Added, id)
	}
	return report
}

func (m *TagMerger) notify(n domain.Notification) {
	if m.notifier != nil {
		m.notifier.Notify(n)
	}
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

func TestMergeOne(t *testing.T) {
	doc := &domain.Document{ID: "d1", Title: "Report", Keywords: []domain.Keyword{kw("topic")}}

	require.NoError(t, MergeOne(doc, kw("sport")))
	assert.Equal(t, []string{"sport", "topic"}, doc.KeywordValues())

	err := MergeOne(doc, domain.Keyword{Value: "sport", Type: domain.KeywordML})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateKeyword)
	assert.Equal(t, "Keyword sport already added to Report", err.Error())
	assert.Equal(t, []string{"sport", "topic"}, doc.KeywordValues())
}

func TestMergeOne_CaseSensitive(t *testing.T) {
	doc := &domain.Document{ID: "d1", Keywords: []domain.Keyword{kw("sport")}}

	require.NoError(t, MergeOne(doc, kw("Sport")))
	assert.Equal(t, []string{"Sport", "sport"}, doc.KeywordValues())
}

func TestMergeOne_Idempotent(t *testing.T) {
	doc := &domain.Document{ID: "d1"}

	require.NoError(t, MergeOne(doc, kw("x")))
	before := doc.Clone()
	assert.Error(t, MergeOne(doc, kw("x")))
	assert.Equal(t, before.Keywords, doc.Keywords)
}

func TestRemoveKeyword(t *testing.T) {
	doc := &domain.Document{Keywords: []domain.Keyword{kw("a"), kw("b"), kw("c")}}
	shared := doc.Keywords

	assert.True(t, RemoveKeyword(doc, "b"))
	assert.Equal(t, []string{"a", "c"}, doc.KeywordValues())
	assert.Equal(t, "b", shared[1].Value, "backing array of a previous copy must be untouched")

	assert.False(t, RemoveKeyword(doc, "missing"))
	assert.Equal(t, []string{"a", "c"}, doc.KeywordValues())
}

func TestTagMerger_MergeWithAncestors(t *testing.T) {
	notifier := &recordingNotifier{}
	merger := NewTagMerger(notifier)
	doc := &domain.Document{ID: "d1", Title: "Report", Keywords: []domain.Keyword{kw("topic")}}

	report := merger.MergeWithAncestors(doc, domain.KeywordCatalogEntry{ID: "sport", Parents: []string{"topic"}})

	assert.Equal(t, []string{"sport"}, report.Added)
	assert.Equal(t, []string{"topic"}, report.Duplicates)
	assert.Equal(t, []string{"sport", "topic"}, doc.KeywordValues())

	notes := notifier.all()
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotifyWarning, notes[0].Level)
	assert.Equal(t, "Keyword topic already added to Report", notes[0].Message)
	assert.Equal(t, "d1", notes[0].DocumentID)
}

func TestTagMerger_MergeWithAncestors_AllNew(t *testing.T) {
	merger := NewTagMerger(nil)
	doc := &domain.Document{ID: "d1"}

	report := merger.MergeWithAncestors(doc, domain.KeywordCatalogEntry{ID: "c", Parents: []string{"b", "a"}})

	assert.Equal(t, []string{"c", "b", "a"}, report.Added)
	assert.Empty(t, report.Duplicates)
	assert.Equal(t, []string{"a", "b", "c"}, doc.KeywordValues())
	for _, k := range doc.Keywords {
		assert.Equal(t, domain.KeywordManual, k.Type)
	}
}

func TestTagMerger_MergeWithAncestors_EveryDuplicateReported(t *testing.T) {
	notifier := &recordingNotifier{}
	merger := NewTagMerger(notifier)
	doc := &domain.Document{ID: "d1", Keywords: []domain.Keyword{kw("a"), kw("b")}}

	report := merger.MergeWithAncestors(doc, domain.KeywordCatalogEntry{ID: "a", Parents: []string{"b", "c"}})

	assert.Equal(t, []string{"c"}, report.Added)
	assert.Equal(t, []string{"a", "b"}, report.Duplicates)
	assert.Len(t, notifier.all(), 2)
}

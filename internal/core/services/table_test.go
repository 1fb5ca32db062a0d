package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

func tableFixture() []domain.Document {
	paris := time.FixedZone("CEST", 2*60*60)
	return []domain.Document{
		{ID: "d1", Title: "Annual report", Type: "pdf", Language: "en", Size: 2048,
			CreationDate: time.Date(2023, 5, 1, 12, 0, 0, 0, paris),
			Keywords:     []domain.Keyword{kw("finance")}},
		{ID: "d2", Title: "Match summary", Type: "docx", Language: "fr", Size: 512,
			CreationDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
			Keywords:     []domain.Keyword{kw("sport")}},
		{ID: "d3", Title: "Budget", Type: "pdf", Language: "de", Size: 1024,
			CreationDate: time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)},
	}
}

func ids(list []domain.Document) []string {
	out := make([]string, len(list))
	for i := range list {
		out[i] = list[i].ID
	}
	return out
}

func TestMatchesFilter(t *testing.T) {
	doc := &tableFixture()[0]

	tests := []struct {
		term string
		want bool
	}{
		{"", true},
		{"Annual", true},
		{"annual", false},
		{"en", true},
		{"204", true},
		{"pd", true},
		{"fin", true},
		{"sport", false},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesFilter(doc, tt.term))
		})
	}
}

func TestDocumentTableView_SetDocuments_NormalisesDates(t *testing.T) {
	v := NewDocumentTableView()
	v.SetDocuments(tableFixture())

	d1, ok := v.Get("d1")
	require.True(t, ok)
	assert.Equal(t, time.UTC, d1.CreationDate.Location())
	assert.Equal(t, 10, d1.CreationDate.Hour())
}

func TestDocumentTableView_SetDocuments_CopiesInput(t *testing.T) {
	input := tableFixture()
	v := NewDocumentTableView()
	v.SetDocuments(input)

	input[0].Keywords[0].Value = "changed"

	d1, _ := v.Get("d1")
	assert.Equal(t, "finance", d1.Keywords[0].Value)
}

func TestDocumentTableView_Rows_FilterAndSort(t *testing.T) {
	v := NewDocumentTableView()
	v.SetDocuments(tableFixture())

	assert.Equal(t, []string{"d1", "d2", "d3"}, ids(v.Rows()))

	v.SetSort(domain.SortSize, false)
	assert.Equal(t, []string{"d2", "d3", "d1"}, ids(v.Rows()))

	v.SetSort(domain.SortCreationDate, true)
	assert.Equal(t, []string{"d3", "d1", "d2"}, ids(v.Rows()))

	v.SetFilter("pdf")
	assert.Equal(t, []string{"d3", "d1"}, ids(v.Rows()))

	v.SetSort(domain.SortTitle, false)
	assert.Equal(t, []string{"d1", "d3"}, ids(v.Rows()))

	assert.Equal(t, domain.ViewState{Filter: "pdf", SortColumn: domain.SortTitle}, v.State())
}

func TestDocumentTableView_Rows_StableSort(t *testing.T) {
	v := NewDocumentTableView()
	v.SetDocuments(tableFixture())

	v.SetSort(domain.SortType, false)
	assert.Equal(t, []string{"d2", "d1", "d3"}, ids(v.Rows()))
}

func TestDocumentTableView_SetSort_IgnoresUnknownColumn(t *testing.T) {
	v := NewDocumentTableView()
	v.SetSort(domain.SortSize, true)
	v.SetSort(domain.SortColumn("keywords"), false)

	assert.Equal(t, domain.SortSize, v.State().SortColumn)
	assert.True(t, v.State().Descending)
}

func TestDocumentTableView_Replace_KeepsPosition(t *testing.T) {
	v := NewDocumentTableView()
	v.SetDocuments(tableFixture())
	rev := v.Revision()

	updated := tableFixture()[1]
	updated.Keywords = []domain.Keyword{kw("football"), kw("sport")}
	assert.True(t, v.Replace(updated))

	assert.Equal(t, []string{"d1", "d2", "d3"}, ids(v.All()))
	d2, _ := v.Get("d2")
	assert.Equal(t, []string{"football", "sport"}, d2.KeywordValues())
	assert.Greater(t, v.Revision(), rev)

	assert.False(t, v.Replace(domain.Document{ID: "missing"}))
}

func TestDocumentTableView_AppendAndRemove(t *testing.T) {
	v := NewDocumentTableView()
	v.SetDocuments(tableFixture())
	v.ToggleSelected("d2")

	v.Append(domain.Document{ID: "d4", Title: "New"})
	assert.Equal(t, 4, v.Len())
	assert.Equal(t, "d4", v.All()[3].ID)

	v.Append(domain.Document{ID: "d4", Title: "Renamed"})
	assert.Equal(t, 4, v.Len())
	d4, _ := v.Get("d4")
	assert.Equal(t, "Renamed", d4.Title)

	assert.True(t, v.Remove("d2"))
	assert.False(t, v.IsSelected("d2"))
	assert.False(t, v.Remove("d2"))
	assert.Equal(t, []string{"d1", "d3", "d4"}, ids(v.All()))
}

func TestDocumentTableView_Mutate(t *testing.T) {
	v := NewDocumentTableView()
	v.SetDocuments(tableFixture())

	doc, err := v.Mutate("d3", func(d *domain.Document) bool {
		return MergeOne(d, kw("budget")) == nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"budget"}, doc.KeywordValues())

	_, err = v.Mutate("missing", func(*domain.Document) bool { return false })
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentTableView_Unsynced(t *testing.T) {
	v := NewDocumentTableView()
	v.SetDocuments(tableFixture())

	row := v.MarkUnsynced("d1", errors.New("server down"))
	assert.Equal(t, "server down", row.Reason)
	assert.Contains(t, v.Unsynced(), "d1")

	assert.True(t, v.MarkSynced("d1"))
	assert.False(t, v.MarkSynced("d1"))
	assert.Empty(t, v.Unsynced())

	v.MarkUnsynced("d2", nil)
	v.SetDocuments(tableFixture())
	assert.Empty(t, v.Unsynced(), "a new collection drops unsynced markers")

	v.RestoreUnsynced([]domain.UnsyncedRow{{DocumentID: "d3"}, {DocumentID: "gone"}})
	assert.Len(t, v.Unsynced(), 1)
}

func TestDocumentTableView_SelectAllRespectsFilter(t *testing.T) {
	v := NewDocumentTableView()
	v.SetDocuments(tableFixture())

	v.SetFilter("pdf")
	v.ToggleAll()
	assert.True(t, v.IsAllSelected())
	assert.ElementsMatch(t, []string{"d1", "d3"}, ids(v.Selected()))
	assert.False(t, v.IsSelected("d2"))

	v.SetFilter("")
	assert.False(t, v.IsAllSelected())

	v.SetFilter("Budget")
	v.ToggleAll()
	assert.Empty(t, v.Selected(), "clearing from a narrowed filter clears everything")
}

func TestDocumentTableView_Selected_SkipsRemovedRows(t *testing.T) {
	v := NewDocumentTableView()
	v.SetDocuments(tableFixture())
	v.ToggleSelected("d3")
	v.ToggleSelected("d1")

	v.SetDocuments(tableFixture()[:2])

	assert.Equal(t, []string{"d1"}, ids(v.Selected()))
	assert.True(t, v.IsSelected("d3"), "stale selections are retained")
}

func TestDocumentTableView_SetState(t *testing.T) {
	v := NewDocumentTableView()
	v.SetState(domain.ViewState{Filter: "x", SortColumn: "bogus", Descending: true})

	assert.Equal(t, domain.ViewState{Filter: "x", SortColumn: domain.SortNone, Descending: true}, v.State())
}

func TestDocumentTableView_MatchingKeepsFilter(t *testing.T) {
	v := NewDocumentTableView()
	v.SetDocuments([]domain.Document{
		{ID: "1", Title: "Zebra"},
		{ID: "2", Title: "Apple"},
		{ID: "3", Title: "Mango"},
	})
	v.SetFilter("Mango")
	v.SetSort(domain.SortTitle, false)

	assert.Equal(t, []string{"2", "1"}, ids(v.Matching("e")))
	assert.Equal(t, []string{"2", "3", "1"}, ids(v.Matching("")))
	assert.Equal(t, "Mango", v.Filter())
	assert.Equal(t, []string{"3"}, ids(v.Rows()))
}

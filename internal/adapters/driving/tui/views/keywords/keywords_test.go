package keywords

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/messages"
	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/styles"
	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/services"
)

func newCatalog() *services.KeywordCatalog {
	catalog := services.NewKeywordCatalog(nil)
	catalog.SetEntries([]domain.KeywordCatalogEntry{
		{ID: "sport", KWM: "Topics"},
		{ID: "Soccer", KWM: "Topics", Parents: []string{"sport"}},
		{ID: "finance", KWM: "Topics"},
	})
	return catalog
}

func typeText(v *View, text string) {
	for _, r := range text {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestView_OpenListsCatalog(t *testing.T) {
	v := NewView(styles.DefaultStyles(), newCatalog())

	cmd := v.Open("a.pdf", "Agenda", false)

	assert.NotNil(t, cmd)
	assert.Equal(t, "a.pdf", v.Target())
	assert.Len(t, v.Entries(), 3)
	assert.Contains(t, v.View(), "Tag Agenda")
}

func TestView_PrefixSearchIgnoresCase(t *testing.T) {
	v := NewView(styles.DefaultStyles(), newCatalog())
	v.Open("", "", false)

	typeText(v, "s")

	assert.Equal(t, "s", v.Prefix())
	require.Len(t, v.Entries(), 2)
	assert.Contains(t, v.View(), "Tag selected documents")
}

func TestView_EnterPicksEntryUnderCursor(t *testing.T) {
	v := NewView(styles.DefaultStyles(), newCatalog())
	v.Open("a.pdf", "Agenda", false)
	typeText(v, "so")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.KeywordPicked{
		Entry:      domain.KeywordCatalogEntry{ID: "Soccer", KWM: "Topics", Parents: []string{"sport"}},
		DocumentID: "a.pdf",
	}, cmd())
}

func TestView_ArrowsMoveCursor(t *testing.T) {
	v := NewView(styles.DefaultStyles(), newCatalog())
	v.Open("", "", false)

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	msg := cmd().(messages.KeywordPicked)
	assert.Equal(t, "finance", msg.Entry.ID)
	assert.Equal(t, "", msg.DocumentID)
}

func TestView_UnknownKeywordAppliesTypedText(t *testing.T) {
	v := NewView(styles.DefaultStyles(), newCatalog())
	v.Open("a.pdf", "Agenda", false)
	typeText(v, "urgent")

	assert.Contains(t, v.View(), `adds "urgent"`)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, domain.KeywordCatalogEntry{ID: "urgent"}, cmd().(messages.KeywordPicked).Entry)
}

func TestView_EnterWithoutCatalogOrText(t *testing.T) {
	v := NewView(styles.DefaultStyles(), nil)
	v.Open("a.pdf", "Agenda", false)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, v.Entries())
}

func TestView_EscGoesBack(t *testing.T) {
	v := NewView(styles.DefaultStyles(), newCatalog())
	v.Open("a.pdf", "Agenda", false)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewDocuments}, cmd())
}

func TestView_CatalogLoaded(t *testing.T) {
	v := NewView(styles.DefaultStyles(), newCatalog())
	v.Open("a.pdf", "Agenda", true)
	assert.Contains(t, v.View(), "Loading keywords...")

	v.Update(messages.CatalogLoaded{Err: domain.ErrBackendUnavailable})

	assert.ErrorIs(t, v.Err(), domain.ErrBackendUnavailable)
	assert.Contains(t, v.View(), "Error:")
}

func TestView_OpenResetsPrefix(t *testing.T) {
	v := NewView(styles.DefaultStyles(), newCatalog())
	v.Open("a.pdf", "Agenda", false)
	typeText(v, "fin")

	v.Open("b.pdf", "Budget", false)

	assert.Equal(t, "", v.Prefix())
	assert.Len(t, v.Entries(), 3)
}

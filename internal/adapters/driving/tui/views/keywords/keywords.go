// Package keywords provides the keyword picker view for the TUI.
package keywords

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/components/input"
	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/components/list"
	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/messages"
	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/styles"
	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driving"
)

// View picks a keyword for one document or for the selection.
// Typing narrows the catalog by prefix. Enter on an empty match applies the
// typed text as a new keyword.
type View struct {
	styles  *styles.Styles
	catalog driving.KeywordCatalog

	prefix  *input.TextInput
	list    *list.KeywordList
	target  string
	label   string
	loading bool
	err     error
}

// NewView creates a keyword picker backed by catalog, which may be nil.
func NewView(s *styles.Styles, catalog driving.KeywordCatalog) *View {
	return &View{
		styles:  s,
		catalog: catalog,
		prefix:  input.NewTextInput(s, "Keyword", "type a prefix"),
		list:    list.NewKeywordList(s),
	}
}

// Open resets the picker for documentID, or for the selection when it is
// empty. label names the target in the title. loading shows that the
// catalog is still being fetched.
func (v *View) Open(documentID, label string, loading bool) tea.Cmd {
	v.target = documentID
	v.label = label
	v.loading = loading
	v.err = nil
	v.prefix.Reset()
	v.refresh()
	return v.prefix.Focus()
}

// Update handles messages for the keyword picker.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.CatalogLoaded:
		v.loading = false
		v.err = msg.Err
		v.refresh()
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // remaining keys go to the prefix input
	switch msg.Type {
	case tea.KeyEsc:
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewDocuments} }
	case tea.KeyUp, tea.KeyDown:
		v.list, _ = v.list.Update(msg)
		return v, nil
	case tea.KeyEnter:
		entry, ok := v.pick()
		if !ok {
			return v, nil
		}
		picked := messages.KeywordPicked{Entry: entry, DocumentID: v.target}
		return v, func() tea.Msg { return picked }
	}

	var cmd tea.Cmd
	v.prefix, cmd = v.prefix.Update(msg)
	v.refresh()
	return v, cmd
}

// pick returns the entry under the cursor, or a bare entry for typed text
// that matches nothing in the catalog.
func (v *View) pick() (domain.KeywordCatalogEntry, bool) {
	if e := v.list.SelectedEntry(); e != nil {
		return *e, true
	}
	typed := strings.TrimSpace(v.prefix.Value())
	if typed == "" {
		return domain.KeywordCatalogEntry{}, false
	}
	return domain.KeywordCatalogEntry{ID: typed}, true
}

func (v *View) refresh() {
	if v.catalog == nil {
		v.list.SetEntries(nil)
		return
	}
	v.list.SetEntries(v.catalog.Search(v.prefix.Value()))
}

// View renders the keyword picker.
func (v *View) View() string {
	var b strings.Builder

	target := v.label
	if v.target == "" {
		target = "selected documents"
	}
	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Tag %s", target)))
	b.WriteString("\n\n")
	b.WriteString(v.prefix.View())
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading keywords..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case v.list.Count() == 0 && strings.TrimSpace(v.prefix.Value()) != "":
		b.WriteString(v.styles.Muted.Render(
			fmt.Sprintf("No catalog match. [enter] adds %q as a new keyword.", strings.TrimSpace(v.prefix.Value()))))
	default:
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] apply  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.prefix.SetWidth(width)
	v.list.SetDimensions(width, height-8)
}

// Target returns the document id being tagged, empty for the selection.
func (v *View) Target() string {
	return v.target
}

// Prefix returns the typed prefix.
func (v *View) Prefix() string {
	return v.prefix.Value()
}

// Entries returns the catalog entries on display.
func (v *View) Entries() []domain.KeywordCatalogEntry {
	return v.list.Entries()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

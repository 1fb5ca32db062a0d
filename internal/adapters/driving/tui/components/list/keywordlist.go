// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/styles"
	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

// KeywordList displays catalog entries in a navigable list.
type KeywordList struct {
	entries  []domain.KeywordCatalogEntry
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewKeywordList creates a new keyword list component.
func NewKeywordList(s *styles.Styles) *KeywordList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &KeywordList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the keyword list.
func (l *KeywordList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages. Only arrow keys move the cursor
// since letters go to the prefix input.
func (l *KeywordList) Update(msg tea.Msg) (*KeywordList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			l.MoveUp()
		case tea.KeyDown:
			l.MoveDown()
		default:
		}
	}
	return l, nil
}

// View renders the keyword list.
func (l *KeywordList) View() string {
	if len(l.entries) == 0 {
		return l.styles.Muted.Render("No matching keywords")
	}

	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.entries))

	lines := make([]string, 0, end-start+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Keywords (%d)", len(l.entries))), "")
	for i := start; i < end; i++ {
		lines = append(lines, l.renderEntry(i, &l.entries[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *KeywordList) renderEntry(index int, entry *domain.KeywordCatalogEntry) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	detail := entry.KWM
	if len(entry.Parents) > 0 {
		detail = strings.TrimSpace(detail + " " + strings.Join(entry.Parents, " > "))
	}
	maxDetail := l.width - len(entry.ID) - 8
	if maxDetail < 10 {
		maxDetail = 10
	}
	if len(detail) > maxDetail {
		detail = detail[:maxDetail-3] + "..."
	}

	if index == l.selected {
		return l.styles.Selected.Render(indicator+entry.ID) + "  " + l.styles.Muted.Render(detail)
	}
	return l.styles.Normal.Render(indicator+entry.ID) + "  " + l.styles.Muted.Render(detail)
}

// SetEntries replaces the entries and resets the cursor.
func (l *KeywordList) SetEntries(entries []domain.KeywordCatalogEntry) {
	l.entries = entries
	l.selected = 0
}

// Entries returns the current entries.
func (l *KeywordList) Entries() []domain.KeywordCatalogEntry {
	return l.entries
}

// Selected returns the index of the entry under the cursor.
func (l *KeywordList) Selected() int {
	return l.selected
}

// SelectedEntry returns the entry under the cursor, or nil if the list is empty.
func (l *KeywordList) SelectedEntry() *domain.KeywordCatalogEntry {
	if l.selected < 0 || l.selected >= len(l.entries) {
		return nil
	}
	return &l.entries[l.selected]
}

// MoveUp moves the cursor up.
func (l *KeywordList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the cursor down.
func (l *KeywordList) MoveDown() {
	if l.selected < len(l.entries)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *KeywordList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of entries.
func (l *KeywordList) Count() int {
	return len(l.entries)
}

// Package documents provides the document table view for the TUI.
package documents

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/components/input"
	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/keymap"
	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/messages"
	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/styles"
	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driving"
)

// sortCycle is the order the sort key steps through.
var sortCycle = []domain.SortColumn{
	domain.SortNone,
	domain.SortTitle,
	domain.SortType,
	domain.SortLanguage,
	domain.SortSize,
	domain.SortCreationDate,
}

// View is the document table.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	table  driving.TableView

	filter     *input.TextInput
	filtering  bool
	prevFilter string

	removing      bool
	removeCursor  int
	cursor        int
	scrollOffset  int
	width, height int
	loading       bool
	err           error
}

// NewView creates a new documents view over table.
func NewView(s *styles.Styles, km *keymap.KeyMap, table driving.TableView) *View {
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	filter := input.NewTextInput(s, "Filter", "title, language, size, type or keyword")
	filter.Blur()
	return &View{
		styles:  s,
		keymap:  km,
		table:   table,
		filter:  filter,
		loading: true,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case v.filtering:
			return v.handleFilterKey(msg)
		case v.removing:
			return v.handleRemoveKey(msg)
		default:
			return v.handleKey(msg)
		}

	case messages.DocumentsLoaded:
		v.loading = false
		v.err = msg.Err
		v.clampCursor()

	case messages.KeywordApplied, messages.BulkApplied, messages.TaggingSubmitted:
		v.clampCursor()

	case messages.RefreshRequested:
		v.loading = true

	case messages.ErrorOccurred:
		v.err = msg.Err
	}
	return v, nil
}

//nolint:gocyclo // one case per key binding
func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	rows := v.table.Rows()

	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.cursor > 0 {
			v.cursor--
			v.adjustScroll()
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.cursor < len(rows)-1 {
			v.cursor++
			v.adjustScroll()
		}
	case keymap.Matches(k, v.keymap.Toggle):
		if doc := v.current(rows); doc != nil {
			v.table.ToggleSelected(doc.ID)
		}
	case keymap.Matches(k, v.keymap.ToggleAll):
		v.table.ToggleAll()
	case keymap.Matches(k, v.keymap.Filter):
		v.filtering = true
		v.prevFilter = v.table.State().Filter
		v.filter.SetValue(v.prevFilter)
		return v, v.filter.Focus()
	case keymap.Matches(k, v.keymap.Tag):
		if doc := v.current(rows); doc != nil {
			id := doc.ID
			return v, func() tea.Msg { return messages.PickKeyword{DocumentID: id} }
		}
	case keymap.Matches(k, v.keymap.TagSelected):
		if len(v.table.Selected()) == 0 {
			return v, notice(domain.NotifyWarning, "Select documents first")
		}
		return v, func() tea.Msg { return messages.PickKeyword{} }
	case keymap.Matches(k, v.keymap.Remove):
		if doc := v.current(rows); doc != nil && len(doc.Keywords) > 0 {
			v.removing = true
			v.removeCursor = 0
		}
	case keymap.Matches(k, v.keymap.Sort):
		state := v.table.State()
		v.table.SetSort(nextSort(state.SortColumn), state.Descending)
	case keymap.Matches(k, v.keymap.Reverse):
		state := v.table.State()
		v.table.SetSort(state.SortColumn, !state.Descending)
	case keymap.Matches(k, v.keymap.Refresh):
		return v, func() tea.Msg { return messages.RefreshRequested{} }
	case keymap.Matches(k, v.keymap.Tagging):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewTagging} }
	case keymap.Matches(k, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	case k == "q":
		return v, func() tea.Msg { return messages.Quit{} }
	}
	return v, nil
}

// handleFilterKey applies the filter as it is typed. Esc restores the
// previous filter, enter keeps the new one.
func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // remaining keys go to the input
	switch msg.Type {
	case tea.KeyEnter:
		v.filtering = false
		v.filter.Blur()
		return v, nil
	case tea.KeyEsc:
		v.filtering = false
		v.filter.Blur()
		v.table.SetFilter(v.prevFilter)
		v.clampCursor()
		return v, nil
	}

	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	v.table.SetFilter(v.filter.Value())
	v.cursor = 0
	v.scrollOffset = 0
	return v, cmd
}

func (v *View) handleRemoveKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	doc := v.current(v.table.Rows())
	if doc == nil {
		v.removing = false
		return v, nil
	}

	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.removeCursor > 0 {
			v.removeCursor--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.removeCursor < len(doc.Keywords)-1 {
			v.removeCursor++
		}
	case keymap.Matches(k, v.keymap.Select):
		v.removing = false
		if v.removeCursor < len(doc.Keywords) {
			req := messages.RemoveKeywordRequested{
				DocumentID: doc.ID,
				Value:      doc.Keywords[v.removeCursor].Value,
			}
			return v, func() tea.Msg { return req }
		}
	case keymap.Matches(k, v.keymap.Back):
		v.removing = false
	}
	return v, nil
}

func notice(level domain.NotificationLevel, text string) tea.Cmd {
	return func() tea.Msg {
		return messages.NotificationReceived{Notification: domain.Notification{Level: level, Message: text}}
	}
}

func nextSort(current domain.SortColumn) domain.SortColumn {
	for i, c := range sortCycle {
		if c == current {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return domain.SortNone
}

func (v *View) current(rows []domain.Document) *domain.Document {
	if v.cursor < 0 || v.cursor >= len(rows) {
		return nil
	}
	return &rows[v.cursor]
}

func (v *View) clampCursor() {
	n := len(v.table.Rows())
	if v.cursor >= n {
		v.cursor = max(n-1, 0)
	}
	v.adjustScroll()
}

// adjustScroll adjusts the scroll offset to keep the cursor visible.
func (v *View) adjustScroll() {
	visible := v.visibleRowCount()
	if v.cursor < v.scrollOffset {
		v.scrollOffset = v.cursor
	} else if v.cursor >= v.scrollOffset+visible {
		v.scrollOffset = v.cursor - visible + 1
	}
}

func (v *View) visibleRowCount() int {
	// title, filter, header, scroll indicator, help and status bar
	available := v.height - 9
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the document table.
func (v *View) View() string {
	var b strings.Builder
	rows := v.table.Rows()

	title := fmt.Sprintf("Documents (%d of %d)", len(rows), len(v.table.All()))
	b.WriteString(v.styles.Title.Render(title))
	if state := v.table.State(); state.SortColumn != domain.SortNone {
		dir := "asc"
		if state.Descending {
			dir = "desc"
		}
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  sorted by %s %s", state.SortColumn, dir)))
	}
	b.WriteString("\n")

	if v.filtering {
		b.WriteString(v.filter.View())
	} else if f := v.table.State().Filter; f != "" {
		b.WriteString(v.styles.Muted.Render("Filter: " + f))
	}
	b.WriteString("\n\n")

	switch {
	case v.loading && len(rows) == 0:
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
	case v.err != nil && len(rows) == 0:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(rows) == 0:
		b.WriteString(v.styles.Muted.Render("No documents."))
	case v.removing:
		b.WriteString(v.renderRemoveMenu(v.current(rows)))
	default:
		b.WriteString(v.renderTable(rows))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderTable(rows []domain.Document) string {
	var b strings.Builder
	titleWidth := v.titleWidth()

	b.WriteString(v.styles.Header.Render(fmt.Sprintf("  %s %-*s %-6s %-8s %9s %-16s %s",
		checkbox(v.table.IsAllSelected()), titleWidth, "Title", "Type", "Language", "Size", "Created", "Keywords")))
	b.WriteString("\n")

	unsynced := v.table.Unsynced()
	visible := v.visibleRowCount()
	end := min(v.scrollOffset+visible, len(rows))
	for i := v.scrollOffset; i < end; i++ {
		_, stale := unsynced[rows[i].ID]
		b.WriteString(v.renderRow(i, &rows[i], titleWidth, stale))
		b.WriteString("\n")
	}

	if len(rows) > visible {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]", v.scrollOffset+1, end, len(rows))))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (v *View) renderRow(index int, doc *domain.Document, titleWidth int, stale bool) string {
	indicator := "  "
	if index == v.cursor {
		indicator = "> "
	}

	title := truncate(doc.DisplayTitle(), titleWidth)
	cells := fmt.Sprintf("%s %-*s %-6s %-8s %9s %-16s ",
		checkbox(v.table.IsSelected(doc.ID)), titleWidth, title,
		truncate(doc.Type, 6), truncate(doc.Language, 8), formatSize(doc.Size), formatDate(doc))

	var line string
	if index == v.cursor {
		line = v.styles.Selected.Render(indicator + cells)
	} else {
		line = v.styles.Normal.Render(indicator + cells)
	}
	line += v.renderKeywords(doc.Keywords)
	if stale {
		line += v.styles.Warning.Render(" *")
	}
	return line
}

func (v *View) renderKeywords(keywords []domain.Keyword) string {
	parts := make([]string, len(keywords))
	for i, kw := range keywords {
		parts[i] = v.styles.Keyword(kw.Type).Render(kw.Value)
	}
	return strings.Join(parts, ", ")
}

func (v *View) renderRemoveMenu(doc *domain.Document) string {
	if doc == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Remove keyword from: %s", doc.DisplayTitle())))
	b.WriteString("\n\n")
	for i, kw := range doc.Keywords {
		if i == v.removeCursor {
			b.WriteString(v.styles.Selected.Render("> " + kw.Value))
		} else {
			b.WriteString("  " + v.styles.Keyword(kw.Type).Render(kw.Value))
		}
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  (%s)", kw.Type)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] remove  [esc] cancel"))
	return b.String()
}

func (v *View) renderHelp() string {
	if v.filtering {
		return v.styles.Help.Render("[enter] keep filter  [esc] cancel")
	}
	return v.styles.Help.Render(
		"[space] select  [a] all  [t] tag  [T] tag selection  [x] remove  [/] filter  [s/S] sort  [m] tagging  [r] refresh")
}

func (v *View) titleWidth() int {
	// checkbox, type, language, size, date and a minimal keyword column
	w := v.width - 72
	if w < 12 {
		w = 12
	}
	if w > 48 {
		w = 48
	}
	return w
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

func formatDate(doc *domain.Document) string {
	if doc.CreationDate.IsZero() {
		return "-"
	}
	return doc.CreationDate.Format("2006-01-02 15:04")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.filter.SetWidth(width)
	v.adjustScroll()
}

// Cursor returns the index of the row under the cursor.
func (v *View) Cursor() int {
	return v.cursor
}

// CurrentDocument returns the document under the cursor.
func (v *View) CurrentDocument() *domain.Document {
	return v.current(v.table.Rows())
}

// IsFiltering reports whether the filter input has focus.
func (v *View) IsFiltering() bool {
	return v.filtering
}

// IsRemoving reports whether the keyword removal menu is open.
func (v *View) IsRemoving() bool {
	return v.removing
}

// Loading reports whether the documents are still being fetched.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

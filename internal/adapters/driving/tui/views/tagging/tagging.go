// Package tagging provides the tagging method view for the TUI.
package tagging

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/messages"
	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/styles"
	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driving"
)

type step int

const (
	stepMethod step = iota
	stepModel
)

// View chooses a tagging method, and a keyword model when the method needs
// one, then submits it over the selection.
type View struct {
	styles  *styles.Styles
	table   driving.TableView
	catalog driving.KeywordCatalog

	methods []domain.TaggingMethod
	step    step
	method  int
	model   int
}

// NewView creates a tagging view. catalog may be nil, in which case the
// keyword model method cannot be submitted.
func NewView(s *styles.Styles, table driving.TableView, catalog driving.KeywordCatalog) *View {
	return &View{
		styles:  s,
		table:   table,
		catalog: catalog,
		methods: domain.TaggingMethods(),
	}
}

// Reset returns to the method step.
func (v *View) Reset() {
	v.step = stepMethod
	v.method = 0
	v.model = 0
}

// Update handles messages for the tagging view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch km.String() {
	case "up", "k":
		v.move(-1)
	case "down", "j":
		v.move(1)
	case "esc":
		if v.step == stepModel {
			v.step = stepMethod
			return v, nil
		}
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewDocuments} }
	case "enter":
		return v.confirm()
	}
	return v, nil
}

func (v *View) move(delta int) {
	switch v.step {
	case stepMethod:
		v.method = clamp(v.method+delta, len(v.methods))
	case stepModel:
		v.model = clamp(v.model+delta, len(v.models()))
	}
}

func (v *View) confirm() (*View, tea.Cmd) {
	if len(v.table.Selected()) == 0 {
		return v, notice(domain.NotifyWarning, "Select documents first")
	}

	method := v.methods[v.method]
	if method.Type != domain.KeywordModelType {
		req := messages.TaggingRequested{Method: method}
		return v, func() tea.Msg { return req }
	}

	models := v.models()
	if v.step == stepMethod {
		if len(models) == 0 {
			return v, notice(domain.NotifyWarning, "No keyword models available")
		}
		v.step = stepModel
		v.model = 0
		return v, nil
	}

	model := models[v.model]
	req := messages.TaggingRequested{Method: method, Model: &model}
	return v, func() tea.Msg { return req }
}

func (v *View) models() []domain.KeywordModel {
	if v.catalog == nil {
		return nil
	}
	return v.catalog.Models()
}

// View renders the tagging view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Apply tagging method"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%d documents selected", len(v.table.Selected()))))
	b.WriteString("\n\n")

	switch v.step {
	case stepMethod:
		for i, m := range v.methods {
			b.WriteString(v.renderOption(i == v.method, m.Name, string(m.Type)))
		}
	case stepModel:
		b.WriteString(v.styles.Subtitle.Render("Keyword model"))
		b.WriteString("\n")
		for i, m := range v.models() {
			b.WriteString(v.renderOption(i == v.model, m.ID, fmt.Sprintf("%d keywords", len(m.Keywords))))
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] submit  [esc] back"))
	return b.String()
}

func (v *View) renderOption(current bool, label, detail string) string {
	if current {
		return v.styles.Selected.Render("> "+label) + "  " + v.styles.Muted.Render(detail) + "\n"
	}
	return v.styles.Normal.Render("  "+label) + "  " + v.styles.Muted.Render(detail) + "\n"
}

// Method returns the highlighted tagging method.
func (v *View) Method() domain.TaggingMethod {
	return v.methods[v.method]
}

// ChoosingModel reports whether the keyword model step is shown.
func (v *View) ChoosingModel() bool {
	return v.step == stepModel
}

func notice(level domain.NotificationLevel, text string) tea.Cmd {
	return func() tea.Msg {
		return messages.NotificationReceived{Notification: domain.Notification{Level: level, Message: text}}
	}
}

func clamp(i, n int) int {
	if i < 0 || n == 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

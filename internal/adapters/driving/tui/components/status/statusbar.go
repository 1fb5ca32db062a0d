// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/keymap"
	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/styles"
	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateBusy    State = "busy"
	StateNotice  State = "notice"
)

// Bar displays notifications, row counts and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	notice   domain.Notification
	rows     int
	selected int
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	frame := s.styles.StatusBar.GetHorizontalFrameSize()
	padding := s.width - frame - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Loading...")
	case StateBusy:
		return s.styles.Warning.Render("Tagging in progress...")
	case StateNotice:
		return s.styles.Level(s.notice.Level).Render(s.notice.Message)
	case StateReady:
	}
	if s.rows == 0 {
		return s.styles.Muted.Render("Ready")
	}
	return s.styles.Normal.Render(fmt.Sprintf("%d documents, %d selected", s.rows, s.selected))
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.rows > 0 {
		bindings = s.keymap.TableHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetNotification shows n until ClearNotification is called.
func (s *Bar) SetNotification(n domain.Notification) {
	s.notice = n
	s.state = StateNotice
}

// Notification returns the notification on display.
func (s *Bar) Notification() domain.Notification {
	return s.notice
}

// ClearNotification returns the bar to the ready state if it shows a notification.
func (s *Bar) ClearNotification() {
	s.notice = domain.Notification{}
	if s.state == StateNotice {
		s.state = StateReady
	}
}

// SetCounts sets the number of visible and selected rows.
func (s *Bar) SetCounts(rows, selected int) {
	s.rows = rows
	s.selected = selected
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.notice = domain.Notification{}
	s.rows = 0
	s.selected = 0
}

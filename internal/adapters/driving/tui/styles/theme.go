// Package styles holds the TUI palette and the lipgloss styles built from it.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

// Theme is the colour palette. Each colour has one role in the layout.
type Theme struct {
	Primary   lipgloss.Color // titles, cursor row
	Secondary lipgloss.Color // subtitles, column headings
	Text      lipgloss.Color
	Muted     lipgloss.Color // hints, empty states
	Bar       lipgloss.Color // status bar background
	Frame     lipgloss.Color // input borders

	Success lipgloss.Color
	Warning lipgloss.Color // also unsynced rows
	Error   lipgloss.Color

	// Keyword colours by how the keyword was attached.
	KeywordManual lipgloss.Color
	KeywordModel  lipgloss.Color
	KeywordML     lipgloss.Color
}

// DefaultTheme is a dark palette; keyword colours follow the web client
// (grey manual, green model, blue ML).
func DefaultTheme() *Theme {
	return &Theme{
		Primary:       "#7C3AED",
		Secondary:     "#06B6D4",
		Text:          "#CDD6F4",
		Muted:         "#6C7086",
		Bar:           "#181825",
		Frame:         "#45475A",
		Success:       "#A6E3A1",
		Warning:       "#F9E2AF",
		Error:         "#F38BA8",
		KeywordManual: "#A6A6A6",
		KeywordModel:  "#66FF66",
		KeywordML:     "#3399FF",
	}
}

// Styles are the rendered styles shared by every view.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style

	Header   lipgloss.Style // table column headings
	Selected lipgloss.Style // row under the cursor

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style

	keywords map[domain.KeywordType]lipgloss.Style
}

// NewStyles builds styles from theme, or from DefaultTheme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	return &Styles{
		theme:    theme,
		Title:    fg(theme.Primary).Bold(true),
		Subtitle: fg(theme.Secondary).Bold(true),
		Normal:   fg(theme.Text),
		Muted:    fg(theme.Muted),
		Help:     fg(theme.Muted).Italic(true),
		Header:   fg(theme.Secondary).Bold(true).Underline(true),
		Selected: fg(theme.Text).Background(theme.Primary).Bold(true),
		Success:  fg(theme.Success),
		Warning:  fg(theme.Warning),
		Error:    fg(theme.Error).Bold(true),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Frame).
			Padding(0, 1),
		StatusBar: fg(theme.Muted).Background(theme.Bar).Padding(0, 1),
		keywords: map[domain.KeywordType]lipgloss.Style{
			domain.KeywordManual:    fg(theme.KeywordManual),
			domain.KeywordModelType: fg(theme.KeywordModel),
			domain.KeywordML:        fg(theme.KeywordML),
		},
	}
}

func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

func (s *Styles) Theme() *Theme {
	return s.theme
}

// Keyword returns the style for a keyword of type t. Unknown types render
// like manual keywords.
func (s *Styles) Keyword(t domain.KeywordType) lipgloss.Style {
	if style, ok := s.keywords[t]; ok {
		return style
	}
	return s.keywords[domain.KeywordManual]
}

// Level returns the style for a notification of the given level.
func (s *Styles) Level(level domain.NotificationLevel) lipgloss.Style {
	switch level {
	case domain.NotifyError:
		return s.Error
	case domain.NotifyWarning:
		return s.Warning
	default:
		return s.Success
	}
}

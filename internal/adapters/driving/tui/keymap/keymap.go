// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a choice.
	Select key.Binding

	// Toggle flips the selection of the row under the cursor.
	Toggle key.Binding

	// ToggleAll selects every visible row, or clears the selection.
	ToggleAll key.Binding

	// Filter focuses the filter input.
	Filter key.Binding

	// Tag opens the keyword picker for the row under the cursor.
	Tag key.Binding

	// TagSelected opens the keyword picker for the selection.
	TagSelected key.Binding

	// Remove opens the keyword removal menu for the row under the cursor.
	Remove key.Binding

	// Tagging opens the tagging method view.
	Tagging key.Binding

	// Sort cycles the sort column.
	Sort key.Binding

	// Reverse flips the sort direction.
	Reverse key.Binding

	// Refresh re-fetches the documents.
	Refresh key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select row"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Tag: key.NewBinding(
			key.WithKeys("t", "enter"),
			key.WithHelp("t", "tag"),
		),
		TagSelected: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "tag selection"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove keyword"),
		),
		Tagging: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "tagging method"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Reverse: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "reverse"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// TableHelp returns keybindings for the document table.
func (k *KeyMap) TableHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Tag, k.TagSelected, k.Filter, k.Help}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.ToggleAll},
		{k.Filter, k.Sort, k.Reverse, k.Refresh},
		{k.Tag, k.TagSelected, k.Remove, k.Tagging},
		{k.Select, k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}

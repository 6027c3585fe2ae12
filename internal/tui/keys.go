package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keybindings for the dashboard.
type keyMap struct {
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Enter    key.Binding
	Back     key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("k/up", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/down", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "b"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "f", " "),
		key.WithHelp("pgdn", "page down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open commit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next tab"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev tab"),
	),
}

// ---------------------------------------------------------------------------
// Per-tab help keymaps for the help.Model component.
// Each implements help.KeyMap (ShortHelp + FullHelp).
// ---------------------------------------------------------------------------

// scrollHelpKeyMap is shown on the chart tabs.
type scrollHelpKeyMap struct{}

func (k scrollHelpKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Tab, keys.ShiftTab, keys.Up, keys.Down, keys.Quit}
}

func (k scrollHelpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// detailsHelpKeyMap is shown on the details tab.
type detailsHelpKeyMap struct{}

func (k detailsHelpKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Tab, keys.Up, keys.Down, keys.Enter, keys.Quit}
}

func (k detailsHelpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// browserHelpKeyMap is shown in the commit browser.
type browserHelpKeyMap struct{}

func (k browserHelpKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Up, keys.Down, keys.PageDown, keys.Back, keys.Quit}
}

func (k browserHelpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

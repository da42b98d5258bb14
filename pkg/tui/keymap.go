package tui

import "github.com/charmbracelet/bubbles/key"

// PagerKeyMap defines the key bindings for the script preview.
type PagerKeyMap struct {
	Write key.Binding
	Copy  key.Binding
	Quit  key.Binding
	Help  key.Binding

	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
}

// DefaultPagerKeyMap returns the default preview key bindings.
func DefaultPagerKeyMap() PagerKeyMap {
	return PagerKeyMap{
		Write: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "write script"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy script"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup/b", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f", " "),
			key.WithHelp("pgdn/f", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k PagerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Write, k.Copy, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap.
func (k PagerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Bottom},
		{k.Write, k.Copy, k.Quit, k.Help},
	}
}

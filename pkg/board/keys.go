package board

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the board's bindings. Printable keys always go to the search box,
// so navigation uses non-printing keys only.
type keyMap struct {
	PrevPage  key.Binding
	NextPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding
	Refresh   key.Binding
	Clear     key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevPage: key.NewBinding(
			key.WithKeys("pgup", "alt+left"),
			key.WithHelp("pgup", "previous"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("pgdown", "alt+right"),
			key.WithHelp("pgdn", "next"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("ctrl+home"),
			key.WithHelp("ctrl+home", "first"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("ctrl+end"),
			key.WithHelp("ctrl+end", "last"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "scroll"),
		),
		ScrollDn: key.NewBinding(
			key.WithKeys("down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear/quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.ScrollUp, k.Refresh, k.Clear, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage},
		{k.ScrollUp, k.Refresh, k.Clear, k.Quit},
	}
}

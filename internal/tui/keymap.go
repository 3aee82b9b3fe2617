package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines every binding the dashboard reacts to. The same
// left/right and up/down bindings mean different things per context;
// the handlers decide, the map just names the keys.
type keyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Refresh key.Binding
	Clear   key.Binding

	PrevTab key.Binding
	NextTab key.Binding
	JumpTab key.Binding

	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	Explain key.Binding
	Select  key.Binding
	Delete  key.Binding
	Close   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),

		PrevTab: key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "tabs")),
		NextTab: key.NewBinding(key.WithKeys("right")),
		JumpTab: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5")),

		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "select")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup/pgdn", "page")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home/end", "jump")),
		End:      key.NewBinding(key.WithKeys("end")),

		Explain: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "explain")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// statusBindings is the short help for the bottom bar, per context.
func (m Model) statusBindings() []key.Binding {
	if m.explain.visible {
		return []key.Binding{m.keys.Up, m.keys.Select, m.keys.PageUp, m.keys.Close}
	}
	return []key.Binding{m.keys.PrevTab, m.keys.Up, m.keys.Explain, m.keys.Clear, m.keys.Help, m.keys.Quit}
}

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Sync   key.Binding
	Abort  key.Binding
	Start  key.Binding
	Faster key.Binding
	Slower key.Binding
	Help   key.Binding
	Scroll key.Binding
	More   key.Binding
	Quit   key.Binding
}

// Start, Faster, Slower and Help are forwarded as console commands; their
// bindings only feed the help view.
func newKeyMap() keyMap {
	return keyMap{
		Sync:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "sync")),
		Abort:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Faster: key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "faster")),
		Slower: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "slower")),
		Help:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "commands")),
		Scroll: key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓", "scroll log")),
		More:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc", "q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sync, k.Abort, k.Start, k.More, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Sync, k.Abort},
		{k.Start, k.Faster, k.Slower, k.Help},
		{k.Scroll, k.More, k.Quit},
	}
}

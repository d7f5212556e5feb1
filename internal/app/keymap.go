package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the review overlay bindings.
type KeyMap struct {
	Quit       key.Binding
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	ToggleFold key.Binding
	FoldAll    key.Binding
	ExpandAll  key.Binding
	Comment    key.Binding
	Delete     key.Binding
	Send       key.Binding
	Refresh    key.Binding
	Help       key.Binding
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "move up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/down", "move down")),
		Top:        key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
		Bottom:     key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
		PageUp:     key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("ctrl+u", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("ctrl+d", "page down")),
		ToggleFold: key.NewBinding(key.WithKeys("z", "tab"), key.WithHelp("z", "fold file")),
		FoldAll:    key.NewBinding(key.WithKeys("Z"), key.WithHelp("Z", "fold all")),
		ExpandAll:  key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "expand all")),
		Comment:    key.NewBinding(key.WithKeys("c", "enter"), key.WithHelp("c", "comment")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete comment")),
		Send:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "send to agent")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload diff")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

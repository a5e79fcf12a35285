package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap lists the viewer's bindings. It implements help.KeyMap.
type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Clear    key.Binding
	Focus    key.Binding
	Next     key.Binding
	Prev     key.Binding
	Jump     key.Binding
	Copy     key.Binding
	Export   key.Binding
	Reload   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev node")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next node")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle")),
		Clear:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Focus:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "diagram/questions")),
		Next:     key.NewBinding(key.WithKeys("]", "n"), key.WithHelp("]", "next section")),
		Prev:     key.NewBinding(key.WithKeys("[", "p"), key.WithHelp("[", "prev section")),
		Jump:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy detail")),
		Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn", "page down")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Right, k.Select, k.Focus, k.Next, k.Copy, k.Export, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.Select, k.Clear},
		{k.Focus, k.Next, k.Prev, k.Jump, k.PageUp, k.PageDown},
		{k.Copy, k.Export, k.Reload, k.Help, k.Quit},
	}
}

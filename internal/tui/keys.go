package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Toggle   key.Binding
	MovePrev key.Binding
	MoveNext key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	New      key.Binding
	Learn    key.Binding
	Delete   key.Binding
	Progress key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "toggle done")),
		MovePrev: key.NewBinding(key.WithKeys("<", ","), key.WithHelp("<", "move to prev bucket")),
		MoveNext: key.NewBinding(key.WithKeys(">", "."), key.WithHelp(">", "move to next bucket")),
		MoveUp:   key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move down")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		Learn:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit learnings")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Progress: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "progress")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.MovePrev, k.MoveNext, k.New, k.Learn, k.Delete, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.MovePrev, k.MoveNext, k.MoveUp, k.MoveDown},
		{k.New, k.Learn, k.Delete},
		{k.Progress, k.Reload, k.Help, k.Quit},
	}
}

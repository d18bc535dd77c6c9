package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding

	Pick, Drop, Cancel key.Binding

	AddItem, AddContainer, Edit, Delete key.Binding
	Confirm, Deny                       key.Binding

	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),

		Pick:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "pick up")),
		Drop:   key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter", "drop")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		AddItem:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
		AddContainer: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add column")),
		Edit:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Confirm:      key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "confirm")),
		Deny:         key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),

		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func helpLine(bs ...key.Binding) string {
	out := ""
	for _, b := range bs {
		h := b.Help()
		if out != "" {
			out += "  "
		}
		out += h.Key + " " + h.Desc
	}
	return out
}

package picker

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit        key.Binding
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Home        key.Binding
	End         key.Binding
	Select      key.Binding
	Toggle      key.Binding
	ToggleDown  key.Binding
	Back        key.Binding
	Backspace   key.Binding
	ClearFilter key.Binding
	KillWord    key.Binding
	Delete      key.Binding
	Preview     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d")),
		Up:          key.NewBinding(key.WithKeys("up", "k", "K", "ctrl+p")),
		Down:        key.NewBinding(key.WithKeys("down", "j", "J", "ctrl+n")),
		PageUp:      key.NewBinding(key.WithKeys("pgup", "ctrl+b")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown", "ctrl+f")),
		Home:        key.NewBinding(key.WithKeys("home", "ctrl+a")),
		End:         key.NewBinding(key.WithKeys("end", "ctrl+e")),
		Select:      key.NewBinding(key.WithKeys("enter")),
		Toggle:      key.NewBinding(key.WithKeys("tab", " ")),
		ToggleDown:  key.NewBinding(key.WithKeys("shift+tab")),
		Back:        key.NewBinding(key.WithKeys("esc")),
		Backspace:   key.NewBinding(key.WithKeys("backspace")),
		ClearFilter: key.NewBinding(key.WithKeys("delete", "ctrl+u")),
		KillWord:    key.NewBinding(key.WithKeys("ctrl+w")),
		Delete:      key.NewBinding(key.WithKeys("ctrl+x")),
		Preview:     key.NewBinding(key.WithKeys("left", "right", "o", "O")),
	}
}

package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/rezkam/todos/internal/richtext"
)

type keyMap struct {
	Quit      key.Binding
	New       key.Binding
	NextFocus key.Binding
	Close     key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Save      key.Binding
	Delete    key.Binding
	Confirm   key.Binding
}

var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	New:       key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new")),
	NextFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
	Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Up:        key.NewBinding(key.WithKeys("up", "ctrl+p")),
	Down:      key.NewBinding(key.WithKeys("down")),
	Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Delete:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
	Confirm:   key.NewBinding(key.WithKeys("y", "Y")),
}

// formatKeys map editor shortcuts to toolbar commands.
var formatKeys = []struct {
	binding key.Binding
	command richtext.Command
}{
	{key.NewBinding(key.WithKeys("alt+b"), key.WithHelp("alt+b", "bold")), richtext.Bold},
	{key.NewBinding(key.WithKeys("alt+i"), key.WithHelp("alt+i", "italic")), richtext.Italic},
	{key.NewBinding(key.WithKeys("alt+u"), key.WithHelp("alt+u", "underline")), richtext.Underline},
	{key.NewBinding(key.WithKeys("alt+l"), key.WithHelp("alt+l", "bullets")), richtext.InsertUnorderedList},
	{key.NewBinding(key.WithKeys("alt+o"), key.WithHelp("alt+o", "numbers")), richtext.InsertOrderedList},
}

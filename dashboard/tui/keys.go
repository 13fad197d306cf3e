package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings for the dashboard.
type keyMap struct {
	Quit    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	Tab4    key.Binding
	Tab5    key.Binding
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Theme   key.Binding
}

// ShortHelp returns the bindings listed in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.NextTab, k.Tab1, k.Down, k.Select, k.Theme}
}

var keys = keyMap{
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	NextTab: key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "switch")),
	PrevTab: key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "back")),
	Tab1:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1-5", "jump")),
	Tab2:    key.NewBinding(key.WithKeys("2")),
	Tab3:    key.NewBinding(key.WithKeys("3")),
	Tab4:    key.NewBinding(key.WithKeys("4")),
	Tab5:    key.NewBinding(key.WithKeys("5")),
	Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "prev metric")),
	Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/k", "select")),
	Select:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "details")),
	Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
}

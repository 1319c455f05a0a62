package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Tab      key.Binding
	Enter    key.Binding
	Add      key.Binding
	Done     key.Binding
	Day      key.Binding
	Week     key.Binding
	Month    key.Binding
	Prev     key.Binding
	Next     key.Binding
	Today    key.Binding
	Settings key.Binding
	Theme    key.Binding
	Format   key.Binding
	Help     key.Binding
	Quit     key.Binding
	Escape   key.Binding
	Refresh  key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous day")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
	Done:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "complete")),
	Day:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "day view")),
	Week:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week view")),
	Month:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month view")),
	Prev:     key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous period")),
	Next:     key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next period")),
	Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
	Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "light/dark")),
	Format:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "12/24h")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Refresh:  key.NewBinding(key.WithKeys("R", "r"), key.WithHelp("R", "reload")),
}

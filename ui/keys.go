package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings for the player view.
type keyMap struct {
	Toggle       key.Binding
	Next         key.Binding
	Prev         key.Binding
	Replay       key.Binding
	CursorUp     key.Binding
	CursorDown   key.Binding
	Jump         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	RepeatMode   key.Binding
	TargetUp     key.Binding
	TargetDown   key.Binding
	Search       key.Binding
	CancelSearch key.Binding
	Copy         key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n", "next sentence"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p", "previous sentence"),
		),
		Replay: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "replay sentence"),
		),
		CursorUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "move up"),
		),
		CursorDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "move down"),
		),
		Jump: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play selected"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first sentence"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last sentence"),
		),
		RepeatMode: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "repeat mode"),
		),
		TargetUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more repeats"),
		),
		TargetDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "fewer repeats"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		CancelSearch: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel search"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy sentence"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the mini help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Next, k.Prev, k.RepeatMode, k.Search, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Replay, k.Next, k.Prev},
		{k.CursorUp, k.CursorDown, k.Jump, k.Top, k.Bottom},
		{k.RepeatMode, k.TargetUp, k.TargetDown},
		{k.Search, k.CancelSearch, k.Copy, k.Quit},
	}
}

package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the demo keybindings.
type KeyMap struct {
	// File list
	CursorDown key.Binding
	CursorUp   key.Binding
	GotoTop    key.Binding
	GotoBottom key.Binding

	// Popups
	BasicPopup key.Binding
	HTMLPopup  key.Binding
	DeleteFile key.Binding
	Help       key.Binding

	// Dialog history
	Back  key.Binding
	Next  key.Binding
	First key.Binding
	Last  key.Binding

	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default vim-style keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		CursorDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "next file"),
		),
		CursorUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "previous file"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first file"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last file"),
		),
		BasicPopup: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "basic popup"),
		),
		HTMLPopup: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "popup with HTML content"),
		),
		DeleteFile: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete file"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous dialog page"),
		),
		Next: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next dialog page"),
		),
		First: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "first dialog page"),
		),
		Last: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "last dialog page"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+c", "quit"),
		),
	}
}

package tui

import (
	"tabkit/internal/dom"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap is the viewer's key bindings.
type KeyMap struct {
	Prev  key.Binding
	Next  key.Binding
	First key.Binding
	Last  key.Binding

	FocusNext key.Binding
	FocusPrev key.Binding
	Activate  key.Binding
	Jump      key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous tab"),
		),
		Next: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next tab"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "alt+left", "ctrl+left"),
			key.WithHelp("home/alt+←", "first tab"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "alt+right", "ctrl+right"),
			key.WithHelp("end/alt+→", "last tab"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next group"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous group"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "activate"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump to tab"),
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

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.FocusNext, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Last},
		{k.FocusNext, k.FocusPrev, k.Activate, k.Jump},
		{k.Help, k.Quit},
	}
}

// terminalKeys maps terminal key names to document key codes. Terminals
// have no meta key that survives to the application, so alt and ctrl
// stand in for it.
var terminalKeys = map[string]dom.KeyEvent{
	"left":        {Code: dom.KeyArrowLeft},
	"right":       {Code: dom.KeyArrowRight},
	"up":          {Code: dom.KeyArrowUp},
	"down":        {Code: dom.KeyArrowDown},
	"home":        {Code: dom.KeyHome},
	"end":         {Code: dom.KeyEnd},
	"esc":         {Code: dom.KeyEscape},
	"alt+left":    {Code: dom.KeyArrowLeft, Meta: true, Alt: true},
	"alt+right":   {Code: dom.KeyArrowRight, Meta: true, Alt: true},
	"ctrl+left":   {Code: dom.KeyArrowLeft, Meta: true, Ctrl: true},
	"ctrl+right":  {Code: dom.KeyArrowRight, Meta: true, Ctrl: true},
	"shift+left":  {Code: dom.KeyArrowLeft, Shift: true},
	"shift+right": {Code: dom.KeyArrowRight, Shift: true},
}

// KeyEvent translates a terminal key press into a document key event. It
// reports false for keys the document has no code for.
func KeyEvent(msg tea.KeyMsg) (dom.KeyEvent, bool) {
	ev, ok := terminalKeys[msg.String()]
	return ev, ok
}

package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds every binding the wizard understands. Bindings that do not
// apply to the current step are disabled so help hides them.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Continue key.Binding
	Back     key.Binding
	Size     key.Binding
	Temp     key.Binding
	Place    key.Binding
	NewOrder key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Place, k.Continue, k.Back, k.NewOrder, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Place},
		{k.Continue, k.Back, k.Size, k.Temp},
		{k.PageUp, k.PageDown, k.NewOrder},
		{k.Help, k.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "choose"),
		),
		Continue: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "continue"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "left", "h", "shift+tab"),
			key.WithHelp("esc", "back"),
		),
		Size: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "size"),
		),
		Temp: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "hot/iced"),
		),
		Place: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("enter", "place order"),
		),
		NewOrder: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new order"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "scroll down"),
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

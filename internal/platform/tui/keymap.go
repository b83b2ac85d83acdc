package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/handheld/internal/core"
)

// KeyMap holds the bindings for the eight handheld buttons and the shell
// controls around them.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	A      key.Binding
	B      key.Binding
	Start  key.Binding
	Select key.Binding

	Power    key.Binding
	NextGame key.Binding
	Game1    key.Binding
	Game2    key.Binding
	Game3    key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.A, k.B, k.Start, k.Select, k.Power, k.NextGame, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.A, k.B, k.Start, k.Select},
		{k.Power, k.NextGame, k.Game1, k.Game2, k.Game3, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		A: key.NewBinding(
			key.WithKeys("z", "j"),
			key.WithHelp("z", "A"),
		),
		B: key.NewBinding(
			key.WithKeys("x", "k"),
			key.WithHelp("x", "B"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Select: key.NewBinding(
			key.WithKeys(" ", "backspace"),
			key.WithHelp("space", "select"),
		),
		Power: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "power"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next game"),
		),
		Game1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "pong"),
		),
		Game2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "snake"),
		),
		Game3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "tetris"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Button returns the handheld button bound to a key, if any.
func (k KeyMap) Button(msg tea.KeyMsg) (core.Button, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return core.ButtonUp, true
	case key.Matches(msg, k.Down):
		return core.ButtonDown, true
	case key.Matches(msg, k.Left):
		return core.ButtonLeft, true
	case key.Matches(msg, k.Right):
		return core.ButtonRight, true
	case key.Matches(msg, k.A):
		return core.ButtonA, true
	case key.Matches(msg, k.B):
		return core.ButtonB, true
	case key.Matches(msg, k.Start):
		return core.ButtonStart, true
	case key.Matches(msg, k.Select):
		return core.ButtonSelect, true
	}
	return 0, false
}

// GameSlot returns the zero-based game index for a direct-select key.
func (k KeyMap) GameSlot(msg tea.KeyMsg) (int, bool) {
	switch {
	case key.Matches(msg, k.Game1):
		return 0, true
	case key.Matches(msg, k.Game2):
		return 1, true
	case key.Matches(msg, k.Game3):
		return 2, true
	}
	return 0, false
}

package game

import (
	"slices"

	"go-tetris/internal/state"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the bindings the game reacts to.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Rotate  key.Binding
	Down    key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→/l", "right"),
		),
		Rotate: key.NewBinding(
			key.WithKeys("up", "k", "w", " "),
			key.WithHelp("↑/k", "rotate"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "drop"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Rotate, k.Down, k.Restart, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Rotate, k.Down},
		{k.Restart, k.Quit},
	}
}

// Matches reports whether ch is one of the keys of an enabled binding.
func Matches(ch string, bindings ...key.Binding) bool {
	for _, b := range bindings {
		if b.Enabled() && slices.Contains(b.Keys(), ch) {
			return true
		}
	}
	return false
}

// Game connects input to a board, independent of the UI.
type Game struct {
	Board *state.Board
	Keys  KeyMap
}

// NewGame wraps board with the given key bindings.
func NewGame(board *state.Board, keys KeyMap) *Game {
	return &Game{
		Board: board,
		Keys:  keys,
	}
}

// HandleTick processes a timer tick.
func (g *Game) HandleTick() {
	g.Board.Tick()
}

// HandleKeyPress applies the move bound to ch. Unbound keys are ignored.
func (g *Game) HandleKeyPress(ch string) {
	switch {
	case Matches(ch, g.Keys.Left):
		g.Board.Shift(state.Left)
	case Matches(ch, g.Keys.Right):
		g.Board.Shift(state.Right)
	case Matches(ch, g.Keys.Rotate):
		g.Board.Rotate()
	case Matches(ch, g.Keys.Down):
		// soft drop is one extra tick
		g.Board.Tick()
	}
}

// IsOver reports whether the board reached its lost state.
func (g *Game) IsOver() bool {
	return g.Board.Lost()
}

package game

import (
	"fmt"
	"time"

	"go-tetris/internal/shape"
	"go-tetris/internal/state"

	"go.uber.org/zap"
)

// Options configures every board a session creates.
type Options struct {
	Width      int
	Height     int
	Speed      time.Duration // interval between ticks
	LayoutPath string        // optional pre-settled cells
	PruneEmpty bool
}

type Session struct {
	Options     Options
	Keys        KeyMap
	Layout      []shape.Shape
	CurrentGame *Game
	GamesPlayed int

	rng    shape.Rand
	logger *zap.Logger
}

// NewSession loads the layout, if any, and starts the first game.
func NewSession(opts Options, rng shape.Rand, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		Options: opts,
		Keys:    DefaultKeyMap(),
		rng:     rng,
		logger:  logger,
	}

	if opts.LayoutPath != "" {
		layout, err := LoadLayout(opts.LayoutPath, opts.Width, opts.Height)
		if err != nil {
			return nil, err
		}
		s.Layout = layout
	}

	if err := s.NextGame(); err != nil {
		return nil, err
	}
	return s, nil
}

// NextGame replaces the current game with a fresh board.
func (s *Session) NextGame() error {
	boardOpts := []state.Option{
		state.WithLogger(s.logger.With(zap.Int("game", s.GamesPlayed+1))),
		state.WithPruneEmpty(s.Options.PruneEmpty),
	}
	if s.rng != nil {
		boardOpts = append(boardOpts, state.WithRand(s.rng))
	}
	// Boards compact their settled shapes, so each one gets its own copy.
	for _, l := range s.Layout {
		boardOpts = append(boardOpts, state.WithSettled(l.Clone()))
	}

	board, err := state.NewBoard(s.Options.Width, s.Options.Height, boardOpts...)
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}

	s.CurrentGame = NewGame(board, s.Keys)
	s.GamesPlayed++
	s.logger.Debug("game started",
		zap.Int("game", s.GamesPlayed),
		zap.Int("width", s.Options.Width),
		zap.Int("height", s.Options.Height),
		zap.Int("layoutShapes", len(s.Layout)),
	)
	return nil
}

// Restart starts over with the same options.
func (s *Session) Restart() error {
	return s.NextGame()
}

func (s *Session) IsLost() bool {
	return s.CurrentGame != nil && s.CurrentGame.IsOver()
}

package state

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"

	"go-tetris/internal/shape"

	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

// ErrInvalidDimensions is returned by NewBoard for a non-positive width or height.
var ErrInvalidDimensions = errors.New("board dimensions must be positive")

// Direction is a horizontal shift.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) delta() shape.Position {
	if d == Left {
		return shape.Position{X: -1}
	}
	return shape.Position{X: 1}
}

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Board is the game state: one falling shape, the settled shapes and the
// playing/lost machine. It is not safe for concurrent use.
type Board struct {
	width   int
	height  int
	falling shape.Shape
	settled []shape.Shape
	rng     shape.Rand
	logger  *zap.Logger
	prune   bool
	FSM     *fsm.FSM
}

// Option configures a Board at construction.
type Option func(*Board)

// WithRand sets the source used to pick spawned shapes.
func WithRand(r shape.Rand) Option {
	return func(b *Board) { b.rng = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(b *Board) { b.logger = l }
}

// WithSettled places shapes on the board before the first spawn.
func WithSettled(shapes ...shape.Shape) Option {
	return func(b *Board) { b.settled = append(b.settled, shapes...) }
}

// WithPruneEmpty drops settled shapes left without cells after a line clear.
func WithPruneEmpty(prune bool) Option {
	return func(b *Board) { b.prune = prune }
}

// NewBoard creates a width x height board and spawns the first shape.
func NewBoard(width, height int, opts ...Option) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}

	b := &Board{
		width:  width,
		height: height,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	b.FSM = fsm.NewFSM(
		statePlaying,
		getStateTransitions(),
		getStateCallbacks(b),
	)

	b.falling = b.spawn()
	return b, nil
}

const (
	statePlaying = "playing"
	stateLost    = "lost"
)

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: "tick", Src: []string{statePlaying}, Dst: statePlaying},
		{Name: "rotate", Src: []string{statePlaying}, Dst: statePlaying},

		// Shifting keeps working after a loss.
		{Name: "shift", Src: []string{statePlaying}, Dst: statePlaying},
		{Name: "shift", Src: []string{stateLost}, Dst: stateLost},

		{Name: "lose", Src: []string{statePlaying}, Dst: stateLost},
	}
}

func getStateCallbacks(b *Board) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_" + stateLost: func(_ context.Context, e *fsm.Event) {
			b.logger.Info("game lost",
				zap.Int("settled", len(b.settled)),
				zap.Stringer("spawned", b.falling.Variant()),
			)
		},
	}
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// Lost reports whether the game reached its terminal state.
func (b *Board) Lost() bool {
	return b.FSM.Is(stateLost)
}

// Falling returns a copy of the falling shape.
func (b *Board) Falling() shape.Shape {
	return b.falling.Clone()
}

// Settled returns copies of the settled shapes in insertion order.
func (b *Board) Settled() []shape.Shape {
	out := make([]shape.Shape, len(b.settled))
	for i, s := range b.settled {
		out[i] = s.Clone()
	}
	return out
}

func (b *Board) spawn() shape.Shape {
	s := shape.NewRandom(b.rng).Translate(shape.Position{X: (b.width - 1) / 2})
	b.logger.Debug("spawned shape", zap.Stringer("variant", s.Variant()))
	return s
}

// Tick moves the falling shape down one row. When it can't move, the shape
// settles, full lines are cleared and a new shape spawns; if the new shape
// overlaps the stack the game is lost.
func (b *Board) Tick() {
	if !b.FSM.Can("tick") {
		return
	}

	next := b.falling.Translate(shape.Position{Y: 1})
	if !b.IsOutOfBounds(next) && !b.IsColliding(next) {
		b.falling = next
		return
	}

	b.settled = append(b.settled, b.falling)
	b.logger.Debug("shape settled",
		zap.Stringer("variant", b.falling.Variant()),
		zap.Any("cells", b.falling.Positions()),
	)
	if n := b.RemoveFullLines(); n > 0 {
		b.logger.Debug("lines cleared", zap.Int("count", n))
	}

	b.falling = b.spawn()
	if b.IsColliding(b.falling) {
		_ = b.FSM.Event(context.Background(), "lose")
	}
}

// Shift moves the falling shape one column. Blocked moves are dropped.
func (b *Board) Shift(d Direction) {
	if !b.FSM.Can("shift") {
		return
	}
	b.tryReplace(b.falling.Translate(d.delta()))
}

// Rotate turns the falling shape about its anchor. Blocked rotations are dropped.
func (b *Board) Rotate() {
	if !b.FSM.Can("rotate") {
		return
	}
	b.tryReplace(b.falling.Rotate())
}

func (b *Board) tryReplace(next shape.Shape) {
	if b.IsOutOfBounds(next) || b.IsColliding(next) {
		return
	}
	b.falling = next
}

// RemoveFullLines clears every full row, top to bottom, and returns how many
// were cleared.
func (b *Board) RemoveFullLines() int {
	cleared := 0
	for y := 0; y < b.height; y++ {
		if !b.IsLineFull(y) {
			continue
		}
		for i := range b.settled {
			b.settled[i].RemoveLine(y)
		}
		cleared++
	}
	if b.prune && cleared > 0 {
		b.settled = slices.DeleteFunc(b.settled, func(s shape.Shape) bool {
			return s.IsEmpty()
		})
	}
	return cleared
}

// Get returns the variant occupying pos, or shape.Empty.
func (b *Board) Get(pos shape.Position) shape.Variant {
	if b.falling.HasPosition(pos) {
		return b.falling.Variant()
	}
	for _, s := range b.settled {
		if s.HasPosition(pos) {
			return s.Variant()
		}
	}
	return shape.Empty
}

// Positions yields every board cell, row by row from the top.
func (b *Board) Positions() iter.Seq[shape.Position] {
	width, height := b.width, b.height
	return func(yield func(shape.Position) bool) {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !yield(shape.Position{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

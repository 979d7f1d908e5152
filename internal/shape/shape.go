package shape

import (
	"slices"
)

// Position is a board cell. X grows to the right, Y grows downward from the top.
type Position struct {
	X, Y int
}

// Add returns the component-wise sum of p and delta.
func (p Position) Add(delta Position) Position {
	return Position{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// Shape is a set of occupied cells with a rotation anchor and a variant tag.
// Translate and Rotate return new shapes; only RemoveLine mutates in place.
type Shape struct {
	variant Variant
	cells   map[Position]struct{}
	anchor  Position
}

type layout struct {
	cells  []Position
	anchor Position
}

var layouts = map[Variant]layout{
	I: {[]Position{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, Position{1, 0}},
	O: {[]Position{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, Position{0, 0}},
	T: {[]Position{{0, 0}, {1, 0}, {2, 0}, {1, 1}}, Position{0, 0}},
	J: {[]Position{{0, 0}, {0, 1}, {0, 2}, {-1, 2}}, Position{0, 1}},
	L: {[]Position{{0, 0}, {0, 1}, {0, 2}, {1, 2}}, Position{0, 1}},
	S: {[]Position{{0, 0}, {1, 0}, {0, 1}, {-1, 1}}, Position{0, 0}},
	Z: {[]Position{{0, 0}, {-1, 0}, {0, 1}, {1, 1}}, Position{0, 0}},
}

// New returns the fixed layout of v in piece-relative coordinates.
// It panics if v is not one of the seven variants.
func New(v Variant) Shape {
	l, ok := layouts[v]
	if !ok {
		panic("shape: no layout for variant " + v.String())
	}
	return FromCells(v, l.anchor, l.cells...)
}

// Rand is the randomness source used to pick spawned variants.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRandom picks one of the seven variants uniformly.
func NewRandom(r Rand) Shape {
	return New(Variants[r.IntN(len(Variants))])
}

// FromCells builds a shape of variant v from an arbitrary cell set.
// Duplicate cells collapse.
func FromCells(v Variant, anchor Position, cells ...Position) Shape {
	s := Shape{
		variant: v,
		cells:   make(map[Position]struct{}, len(cells)),
		anchor:  anchor,
	}
	for _, c := range cells {
		s.cells[c] = struct{}{}
	}
	return s
}

func (s Shape) Variant() Variant {
	return s.variant
}

func (s Shape) Anchor() Position {
	return s.anchor
}

func (s Shape) Len() int {
	return len(s.cells)
}

func (s Shape) IsEmpty() bool {
	return len(s.cells) == 0
}

// Positions returns the shape's cells sorted by row, then column.
func (s Shape) Positions() []Position {
	out := make([]Position, 0, len(s.cells))
	for c := range s.cells {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b Position) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return out
}

func (s Shape) HasPosition(pos Position) bool {
	_, ok := s.cells[pos]
	return ok
}

// CollidesWith reports whether s and other share at least one cell.
func (s Shape) CollidesWith(other Shape) bool {
	small, large := s.cells, other.cells
	if len(small) > len(large) {
		small, large = large, small
	}
	for c := range small {
		if _, ok := large[c]; ok {
			return true
		}
	}
	return false
}

// Clone returns a copy of s that shares no cells with it.
func (s Shape) Clone() Shape {
	return s.Translate(Position{})
}

// Translate returns a copy of s with every cell and the anchor moved by delta.
func (s Shape) Translate(delta Position) Shape {
	out := Shape{
		variant: s.variant,
		cells:   make(map[Position]struct{}, len(s.cells)),
		anchor:  s.anchor.Add(delta),
	}
	for c := range s.cells {
		out.cells[c.Add(delta)] = struct{}{}
	}
	return out
}

// Rotate returns a copy of s turned 90 degrees about its anchor.
// The anchor is kept as is, so repeated rotations pivot on the same cell.
func (s Shape) Rotate() Shape {
	out := Shape{
		variant: s.variant,
		cells:   make(map[Position]struct{}, len(s.cells)),
		anchor:  s.anchor,
	}
	for c := range s.cells {
		out.cells[rotateAbout(c, s.anchor)] = struct{}{}
	}
	return out
}

func rotateAbout(c, anchor Position) Position {
	a, b := anchor.X, anchor.Y
	return Position{X: -c.Y + b + a, Y: c.X - a + b}
}

// RemoveLine deletes the cells on row y and drops every cell above it by one.
// Cells below y are left alone. A shape may end up with no cells.
func (s *Shape) RemoveLine(y int) {
	next := make(map[Position]struct{}, len(s.cells))
	for c := range s.cells {
		switch {
		case c.Y == y:
			continue
		case c.Y < y:
			c.Y++
		}
		next[c] = struct{}{}
	}
	s.cells = next
}

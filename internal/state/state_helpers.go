package state

import (
	"go-tetris/internal/shape"

	"github.com/kamstrup/intmap"
)

func (b *Board) inBounds(p shape.Position) bool {
	return 0 <= p.X && p.X < b.width && 0 <= p.Y && p.Y < b.height
}

// IsOutOfBounds reports whether any cell of s lies off the board.
func (b *Board) IsOutOfBounds(s shape.Shape) bool {
	for _, p := range s.Positions() {
		if !b.inBounds(p) {
			return true
		}
	}
	return false
}

// IsColliding reports whether s overlaps any settled shape.
func (b *Board) IsColliding(s shape.Shape) bool {
	for _, fixed := range b.settled {
		if fixed.CollidesWith(s) {
			return true
		}
	}
	return false
}

// IsLineFull reports whether the settled cells on row y cover every column.
func (b *Board) IsLineFull(y int) bool {
	columns := intmap.New[int, struct{}](b.width)
	for _, s := range b.settled {
		for _, p := range s.Positions() {
			if p.Y == y {
				columns.Put(p.X, struct{}{})
			}
		}
	}
	return columns.Len() == b.width
}

package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go-tetris/internal/shape"
)

// ErrInvalidLayout is wrapped by every layout parsing failure.
var ErrInvalidLayout = errors.New("invalid layout")

// LoadLayout reads a layout file for a width x height board.
func LoadLayout(path string, width, height int) ([]shape.Shape, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout %s: %w", path, err)
	}
	defer file.Close()

	shapes, err := ParseLayout(file, width, height)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return shapes, nil
}

// ParseLayout turns a text grid into settled shapes, one per variant.
//
// Each character is a cell: '.' or ' ' is empty and the letters I, O, T, J,
// L, S and Z (any case) are cells of that variant. Lines starting with '#'
// are comments. The grid sits on the bottom row of the board.
func ParseLayout(r io.Reader, width, height int) ([]shape.Shape, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		rows = append(rows, strings.TrimRight(line, " \t\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan layout: %w", err)
	}

	// Trailing blank lines carry no cells and would lift the grid.
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) > height {
		return nil, fmt.Errorf("%w: %d rows on a board %d high", ErrInvalidLayout, len(rows), height)
	}

	top := height - len(rows)
	var order []shape.Variant
	cells := make(map[shape.Variant][]shape.Position)

	for i, row := range rows {
		if len(row) > width {
			return nil, fmt.Errorf("%w: row %d is %d wide on a board %d wide", ErrInvalidLayout, i+1, len(row), width)
		}
		for x, ch := range row {
			if ch == '.' || ch == ' ' {
				continue
			}
			v, ok := shape.ParseVariant(string(ch))
			if !ok {
				return nil, fmt.Errorf("%w: unexpected %q at row %d, column %d", ErrInvalidLayout, ch, i+1, x+1)
			}
			if _, seen := cells[v]; !seen {
				order = append(order, v)
			}
			cells[v] = append(cells[v], shape.Position{X: x, Y: top + i})
		}
	}

	shapes := make([]shape.Shape, 0, len(order))
	for _, v := range order {
		shapes = append(shapes, shape.FromCells(v, cells[v][0], cells[v]...))
	}
	return shapes, nil
}

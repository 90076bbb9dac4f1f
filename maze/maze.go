/*
Package maze renders a walk as a message maze.

Every cell the walk visits shows the next character of the hidden message,
rotated to face the walk's heading, and every other cell shows a random
character from a fill alphabet at a random rotation. Reading the message
means finding the walk.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/beka-birhanu/sheefra/walk"
)

const (
	emptyMessageGlyph = '➜'
	emptyFillGlyph    = ' '
)

var (
	ErrStepOutOfBounds = errors.New("walk step is outside the maze")
	ErrEmptyWalk       = errors.New("walk has no steps")
)

// MessageMaze is a rectangular grid of glyphs hiding a message along a walk.
type MessageMaze struct {
	origin walk.Position // north-west corner of the boundary
	width  int           // Width of the maze (number of columns)
	height int           // Height of the maze (number of rows)
	grid   [][]Cell      // grid[row][col]
}

// New threads message through the cells of w and fills the remaining cells
// with runes drawn from fill using rng.
func New(b walk.Boundary, w walk.Walk, message, fill string, rng *rand.Rand) (*MessageMaze, error) {
	if w.Len() == 0 {
		return nil, ErrEmptyWalk
	}

	m := &MessageMaze{
		origin: b.Min(),
		width:  b.Width(),
		height: b.Height(),
	}
	m.grid = make([][]Cell, m.height)
	for row := range m.grid {
		m.grid[row] = make([]Cell, m.width)
	}

	msg := []rune(message)
	for i, s := range w.Steps() {
		if !b.Contains(s.Position) {
			return nil, fmt.Errorf("%w: step %d at %s", ErrStepOutOfBounds, i, s.Position)
		}
		char := emptyMessageGlyph
		if len(msg) > 0 {
			char = msg[i%len(msg)]
		}
		*m.at(s.Position) = Cell{
			Char:     char,
			Rotation: rotations[s.Heading],
			OnPath:   true,
			Heading:  s.Heading,
		}
	}

	noise := []rune(fill)
	for row := range m.grid {
		for col := range m.grid[row] {
			cell := &m.grid[row][col]
			if cell.OnPath {
				continue
			}
			cell.Char = emptyFillGlyph
			if len(noise) > 0 {
				cell.Char = noise[rng.Intn(len(noise))]
			}
			cell.Rotation = noiseRotations[rng.Intn(len(noiseRotations))]
		}
	}

	return m, nil
}

func (m *MessageMaze) at(p walk.Position) *Cell {
	return &m.grid[p.Y-m.origin.Y][p.X-m.origin.X]
}

// Width returns the number of columns.
func (m *MessageMaze) Width() int { return m.width }

// Height returns the number of rows.
func (m *MessageMaze) Height() int { return m.height }

// Cell returns the cell at grid coordinates p. ok is false outside the grid.
func (m *MessageMaze) Cell(p walk.Position) (Cell, bool) {
	row, col := p.Y-m.origin.Y, p.X-m.origin.X
	if row < 0 || row >= m.height || col < 0 || col >= m.width {
		return Cell{}, false
	}
	return m.grid[row][col], true
}

// Rows returns the glyphs of each row, north first.
func (m *MessageMaze) Rows() []string {
	rows := make([]string, m.height)
	for row := range m.grid {
		chars := make([]rune, m.width)
		for col, cell := range m.grid[row] {
			chars[col] = cell.Char
		}
		rows[row] = string(chars)
	}
	return rows
}

// Rotations returns the rotation of each cell, indexed [row][col].
func (m *MessageMaze) Rotations() [][]int {
	out := make([][]int, m.height)
	for row := range m.grid {
		out[row] = make([]int, m.width)
		for col, cell := range m.grid[row] {
			out[row][col] = cell.Rotation
		}
	}
	return out
}

// String provides a boxed textual representation of the maze.
func (m *MessageMaze) String() string {
	return m.render(func(c Cell) rune { return c.Char })
}

// SolutionString draws the walk with heading arrows and leaves noise blank.
func (m *MessageMaze) SolutionString() string {
	return m.render(func(c Cell) rune {
		if c.OnPath {
			return c.Heading.Glyph()
		}
		return ' '
	})
}

func (m *MessageMaze) render(glyph func(Cell) rune) string {
	var sb strings.Builder
	span := m.width - 1

	// Top boundary
	sb.WriteString("╭─" + strings.Repeat("──┬─", span) + "──╮")

	for row := range m.grid {
		if row > 0 {
			sb.WriteString("\n├─" + strings.Repeat("──┼─", span) + "──┤")
		}
		sb.WriteString("\n│ ")
		for col, cell := range m.grid[row] {
			if col > 0 {
				sb.WriteString(" │ ")
			}
			sb.WriteRune(glyph(cell))
		}
		sb.WriteString(" │")
	}

	// Bottom boundary
	sb.WriteString("\n╰─" + strings.Repeat("──┴─", span) + "──╯")
	return sb.String()
}

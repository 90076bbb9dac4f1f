package walk

import (
	"errors"
	"strings"
)

// Heading is the compass direction a walk is moving in.
type Heading int

// Headings in clockwise order. Turning right moves to the next one.
const (
	North Heading = iota
	East
	South
	West

	headingCount = 4
)

var (
	ErrUnknownHeading = errors.New("unknown heading")

	headingOffsets = [headingCount]Position{
		North: {X: 0, Y: -1},
		East:  {X: 1, Y: 0},
		South: {X: 0, Y: 1},
		West:  {X: -1, Y: 0},
	}
	headingGlyphs = [headingCount]rune{North: '↑', East: '→', South: '↓', West: '←'}
	headingNames  = [headingCount]string{North: "North", East: "East", South: "South", West: "West"}
)

// Offset returns the unit vector of a single step in direction h.
func (h Heading) Offset() Position {
	return headingOffsets[h.normalized()]
}

// Glyph returns the arrow used to draw h.
func (h Heading) Glyph() rune {
	return headingGlyphs[h.normalized()]
}

// Right returns the heading after a clockwise quarter turn.
func (h Heading) Right() Heading {
	return (h.normalized() + 1) % headingCount
}

// Left returns the heading after a counter-clockwise quarter turn.
func (h Heading) Left() Heading {
	return (h.normalized() + headingCount - 1) % headingCount
}

// Opposite returns the reverse heading. Walks never move this way.
func (h Heading) Opposite() Heading {
	return (h.normalized() + 2) % headingCount
}

func (h Heading) String() string {
	return headingNames[h.normalized()]
}

func (h Heading) normalized() Heading {
	return ((h % headingCount) + headingCount) % headingCount
}

// ParseHeading accepts a heading name or its first letter, case-insensitive.
func ParseHeading(s string) (Heading, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	}
	return 0, ErrUnknownHeading
}

// Turn is one of the three local moves available from any node.
type Turn int

const (
	TurnLeft Turn = iota
	Straight
	TurnRight
)

// Apply returns the heading h after taking turn t.
func (t Turn) Apply(h Heading) Heading {
	switch t {
	case TurnLeft:
		return h.Left()
	case TurnRight:
		return h.Right()
	default:
		return h
	}
}

package walk

import "fmt"

// Position is a cell coordinate on the grid. Y grows southward.
type Position struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Add returns the vector sum of p and v.
func (p Position) Add(v Position) Position {
	return Position{X: p.X + v.X, Y: p.Y + v.Y}
}

// String returns the position as "x,y".
func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// manhattan returns the number of unit moves between p and q ignoring obstacles.
func manhattan(p, q Position) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Boundary is the axis-aligned rectangle spanned by two corner cells.
// The corners may be given in any order.
type Boundary struct {
	A Position `json:"a" bson:"a"`
	B Position `json:"b" bson:"b"`
}

// Width returns the number of columns covered by the boundary.
func (b Boundary) Width() int {
	return abs(b.B.X-b.A.X) + 1
}

// Height returns the number of rows covered by the boundary.
func (b Boundary) Height() int {
	return abs(b.B.Y-b.A.Y) + 1
}

// Cells returns the number of cells inside the boundary.
func (b Boundary) Cells() int {
	return b.Width() * b.Height()
}

// Min returns the north-west corner.
func (b Boundary) Min() Position {
	return Position{X: min(b.A.X, b.B.X), Y: min(b.A.Y, b.B.Y)}
}

// Max returns the south-east corner.
func (b Boundary) Max() Position {
	return Position{X: max(b.A.X, b.B.X), Y: max(b.A.Y, b.B.Y)}
}

// Contains reports whether p lies inside the boundary, edges included.
func (b Boundary) Contains(p Position) bool {
	lo, hi := b.Min(), b.Max()
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}

// String returns the boundary as "ax,ay:bx,by".
func (b Boundary) String() string {
	return b.A.String() + ":" + b.B.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

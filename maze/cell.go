package maze

import "github.com/beka-birhanu/sheefra/walk"

// Cell represents a single glyph of a message maze.
// Path cells carry a character of the hidden message, the rest carry noise.
type Cell struct {
	Char     rune         // Char is the glyph shown in the cell.
	Rotation int          // Rotation in degrees clockwise; 0 faces East.
	OnPath   bool         // OnPath marks cells visited by the hidden walk.
	Heading  walk.Heading // Heading is the walk's heading on path cells.
}

// rotations maps a heading to the angle its glyph is drawn at.
var rotations = map[walk.Heading]int{
	walk.North: 270,
	walk.East:  0,
	walk.South: 90,
	walk.West:  180,
}

// noiseRotations lists the angles noise cells are drawn at.
var noiseRotations = []int{270, 0, 90, 180}

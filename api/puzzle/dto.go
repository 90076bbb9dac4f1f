// Package puzzleapi provides the request and response shapes of the generator and puzzle routes.
package puzzleapi

import (
	"time"

	"github.com/beka-birhanu/sheefra/puzzle"
	"github.com/beka-birhanu/sheefra/walk"
	"github.com/google/uuid"
)

// GeneratorRequest represents a request to open a walk generator.
// Headings are names or initials (north, E, ...); parity is bounding-box, checkerboard or off.
type GeneratorRequest struct {
	Width        int            `json:"width" binding:"required"`
	Height       int            `json:"height" binding:"required"`
	Length       int            `json:"length" binding:"required"`
	Start        *walk.Position `json:"start"`
	End          *walk.Position `json:"end"`
	StartHeading string         `json:"startHeading"`
	EndHeading   string         `json:"endHeading"`
	Parity       string         `json:"parity"`
}

type GeneratorResponse struct {
	ID uuid.UUID `json:"id"`
}

// PuzzleRequest represents a request to publish the next walk of a generator.
type PuzzleRequest struct {
	Message    string `json:"message"`
	Fill       string `json:"fill"`
	Passphrase string `json:"passphrase" binding:"required"`
}

// PuzzleResponse is the public view of a puzzle. The path stays hidden.
type PuzzleResponse struct {
	ID          uuid.UUID `json:"id"`
	GeneratorID uuid.UUID `json:"generatorId"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Length      int       `json:"length"`
	Rows        []string  `json:"rows"`
	Rotations   [][]int   `json:"rotations"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newPuzzleResponse(p *puzzle.Puzzle) *PuzzleResponse {
	return &PuzzleResponse{
		ID:          p.ID,
		GeneratorID: p.GeneratorID,
		Width:       p.Width,
		Height:      p.Height,
		Length:      p.Length,
		Rows:        p.Rows,
		Rotations:   p.Rotations,
		CreatedAt:   p.CreatedAt,
	}
}

type RevealRequest struct {
	Passphrase string `json:"passphrase" binding:"required"`
}

type RevealResponse struct {
	Token string `json:"token"`
}

// SolutionResponse carries the hidden walk and its arrow rendering.
type SolutionResponse struct {
	Steps  []walk.Step `json:"steps"`
	Arrows string      `json:"arrows"`
}

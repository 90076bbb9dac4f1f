package i

import (
	"context"

	"github.com/beka-birhanu/sheefra/puzzle"
	"github.com/beka-birhanu/sheefra/walk"
	"github.com/google/uuid"
)

// PuzzleRequest holds what a caller supplies to publish a puzzle.
type PuzzleRequest struct {
	GeneratorID uuid.UUID
	Message     string
	Fill        string
	Passphrase  string
}

type PuzzleService interface {
	// Create draws the next walk of the generator and publishes it as a puzzle.
	Create(ctx context.Context, req PuzzleRequest) (*puzzle.Puzzle, error)

	Get(ctx context.Context, id uuid.UUID) (*puzzle.Puzzle, error)

	// Reveal checks the passphrase and returns a token for the solution.
	Reveal(ctx context.Context, id uuid.UUID, passphrase string) (string, error)

	// Solution returns the hidden walk of a puzzle to the holder of a reveal token.
	Solution(ctx context.Context, id uuid.UUID, token string) (walk.Walk, error)
}

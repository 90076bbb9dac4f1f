package i

import (
	"context"

	"github.com/beka-birhanu/sheefra/puzzle"
	"github.com/google/uuid"
)

// PuzzleRepo defines the interface for puzzle persistence operations.
type PuzzleRepo interface {
	// Save inserts or updates a puzzle in the repository.
	Save(ctx context.Context, p *puzzle.Puzzle) error

	// ByID retrieves a puzzle by its unique ID.
	// Returns puzzle.ErrNotFound if there is no such puzzle.
	ByID(ctx context.Context, id uuid.UUID) (*puzzle.Puzzle, error)
}

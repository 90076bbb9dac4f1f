package i

import (
	"time"

	"github.com/google/uuid"
)

// Tokenizer defines methods for issuing and verifying solution reveal tokens.
type Tokenizer interface {
	// Issue creates a token granting access to the solution of puzzleID.
	Issue(puzzleID uuid.UUID, expTime time.Duration) (string, error)

	// Verify validates a token, returning the puzzle it was issued for.
	Verify(token string) (uuid.UUID, error)
}

package i

import (
	"context"

	"github.com/beka-birhanu/sheefra/walk"
	"github.com/google/uuid"
)

// GeneratorRequest describes the board a generator draws walks on.
// Nil corners and headings fall back to the engine defaults.
type GeneratorRequest struct {
	Width        int
	Height       int
	Length       int
	Start        *walk.Position
	End          *walk.Position
	StartHeading *walk.Heading
	EndHeading   *walk.Heading
	Parity       walk.ParityRule
}

// GeneratorManager keeps walk engines alive between requests.
type GeneratorManager interface {
	// Open validates the request and starts a generator session.
	Open(GeneratorRequest) (uuid.UUID, error)

	// Next returns the next walk of the session that has not been served before,
	// together with the board it was drawn on.
	Next(ctx context.Context, id uuid.UUID) (walk.Walk, walk.Boundary, error)

	// Close drops the session.
	Close(id uuid.UUID) error

	StopAll()
}

package walk

import (
	"errors"
	"fmt"
)

// ErrConfiguration is wrapped by every preflight rejection.
var ErrConfiguration = errors.New("invalid walk configuration")

// Preflight rejection kinds. Match them with errors.Is.
var (
	ErrDegenerateBoundary = fmt.Errorf("%w: boundary must be at least 2x2", ErrConfiguration)
	ErrStartOutOfBounds   = fmt.Errorf("%w: start is outside the boundary", ErrConfiguration)
	ErrEndOutOfBounds     = fmt.Errorf("%w: end is outside the boundary", ErrConfiguration)
	ErrLengthTooShort     = fmt.Errorf("%w: length is shorter than any path from start to end", ErrConfiguration)
	ErrLengthTooLong      = fmt.Errorf("%w: length does not fit within the boundary", ErrConfiguration)
	ErrParityInfeasible   = fmt.Errorf("%w: length parity rules out a solution", ErrConfiguration)
)

// Enumeration errors.
var (
	ErrInvalidState       = errors.New("no probed solution available, call Probe first")
	ErrStepBudgetExceeded = errors.New("search step budget exceeded")
)

var configurationKinds = []struct {
	err  error
	kind string
}{
	{ErrDegenerateBoundary, "degenerate-boundary"},
	{ErrStartOutOfBounds, "start-out-of-bounds"},
	{ErrEndOutOfBounds, "end-out-of-bounds"},
	{ErrLengthTooShort, "length-too-short"},
	{ErrLengthTooLong, "length-too-long"},
	{ErrParityInfeasible, "parity-infeasible"},
}

// ConfigurationKind names the preflight rule err violates, or returns ""
// when err is not a preflight rejection.
func ConfigurationKind(err error) string {
	for _, k := range configurationKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return ""
}

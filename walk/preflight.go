package walk

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ParityRule selects the parity pre-check run before searching.
type ParityRule int

const (
	// ParityBoundingBox compares the parity of the start/end bounding-box
	// cell count with the parity of the length and rejects odd/odd and
	// even/even pairs.
	ParityBoundingBox ParityRule = iota
	// ParityCheckerboard rejects lengths whose move count differs from the
	// Manhattan distance by an odd number.
	ParityCheckerboard
	// ParityOff skips the parity check.
	ParityOff
)

var parityNames = map[ParityRule]string{
	ParityBoundingBox:  "bounding-box",
	ParityCheckerboard: "checkerboard",
	ParityOff:          "off",
}

func (r ParityRule) String() string {
	if name, ok := parityNames[r]; ok {
		return name
	}
	return fmt.Sprintf("ParityRule(%d)", int(r))
}

// ParseParityRule accepts the names returned by ParityRule.String. The
// empty string selects ParityBoundingBox.
func ParseParityRule(s string) (ParityRule, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ParityBoundingBox, nil
	}
	for rule, name := range parityNames {
		if name == s {
			return rule, nil
		}
	}
	return 0, fmt.Errorf("unknown parity rule %q", s)
}

// Config is a complete walk request.
type Config struct {
	Boundary     Boundary
	Length       int
	Start        Position
	End          Position
	StartHeading Heading
	EndHeading   Heading
	Parity       ParityRule
}

// Preflight checks that cfg is worth searching. Rules run in a fixed order
// and the first violation is returned.
func Preflight(cfg Config) error {
	b := cfg.Boundary
	if b.Width() < 2 || b.Height() < 2 {
		return errors.Wrapf(ErrDegenerateBoundary, "boundary %s is %dx%d", b, b.Width(), b.Height())
	}
	if !b.Contains(cfg.Start) {
		return errors.Wrapf(ErrStartOutOfBounds, "start %s, boundary %s", cfg.Start, b)
	}
	if !b.Contains(cfg.End) {
		return errors.Wrapf(ErrEndOutOfBounds, "end %s, boundary %s", cfg.End, b)
	}

	span := Boundary{A: cfg.Start, B: cfg.End}
	if shortest := span.Width() + span.Height() - 1; cfg.Length < shortest {
		return errors.Wrapf(ErrLengthTooShort, "length %d, shortest %d", cfg.Length, shortest)
	}
	if cfg.Length > b.Cells() {
		return errors.Wrapf(ErrLengthTooLong, "length %d, cells %d", cfg.Length, b.Cells())
	}

	switch cfg.Parity {
	case ParityBoundingBox:
		area := span.Cells()
		if area%2 == 1 && cfg.Length%2 == 1 {
			return errors.Wrapf(ErrParityInfeasible, "odd span area %d with odd length %d", area, cfg.Length)
		}
		if area%2 == 0 && cfg.Length%2 == 0 {
			return errors.Wrapf(ErrParityInfeasible, "even span area %d with even length %d", area, cfg.Length)
		}
	case ParityCheckerboard:
		if slack := cfg.Length - 1 - manhattan(cfg.Start, cfg.End); slack%2 != 0 {
			return errors.Wrapf(ErrParityInfeasible, "%d moves cannot cover distance %d", cfg.Length-1, manhattan(cfg.Start, cfg.End))
		}
	}
	return nil
}

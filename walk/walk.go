package walk

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedWalk = errors.New("steps do not form a walk")

// Step is a visited cell together with the heading the walk leaves it in.
type Step struct {
	Position Position `json:"position" bson:"position"`
	Heading  Heading  `json:"heading" bson:"heading"`
}

// Walk is an immutable sequence of steps produced by the engine.
type Walk struct {
	steps []Step
}

// FromSteps rebuilds a walk from stored steps. Every step must sit one unit
// ahead of the previous one along the previous heading, and no step may
// reverse the previous heading.
func FromSteps(steps []Step) (Walk, error) {
	if len(steps) == 0 {
		return Walk{}, fmt.Errorf("%w: empty", ErrMalformedWalk)
	}
	for i := 1; i < len(steps); i++ {
		prev, cur := steps[i-1], steps[i]
		if cur.Position != prev.Position.Add(prev.Heading.Offset()) {
			return Walk{}, fmt.Errorf("%w: step %d is not adjacent", ErrMalformedWalk, i)
		}
		if cur.Heading == prev.Heading.Opposite() {
			return Walk{}, fmt.Errorf("%w: step %d reverses", ErrMalformedWalk, i)
		}
	}
	return Walk{steps: append([]Step(nil), steps...)}, nil
}

// Len returns the number of steps.
func (w Walk) Len() int {
	return len(w.steps)
}

// Steps returns a copy of the steps in order.
func (w Walk) Steps() []Step {
	return append([]Step(nil), w.steps...)
}

// Start returns the first step. It panics on the zero Walk.
func (w Walk) Start() Step {
	return w.steps[0]
}

// End returns the last step. It panics on the zero Walk.
func (w Walk) End() Step {
	return w.steps[len(w.steps)-1]
}

// Visits reports whether the walk passes through p.
func (w Walk) Visits(p Position) bool {
	for _, s := range w.steps {
		if s.Position == p {
			return true
		}
	}
	return false
}

// Key returns a fingerprint that is equal for two walks iff their step
// sequences are equal. The start cell and the headings determine every
// other position, so they are all that is encoded.
func (w Walk) Key() string {
	if len(w.steps) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(w.steps[0].Position.String())
	sb.WriteByte(':')
	for _, s := range w.steps {
		sb.WriteByte("NESW"[s.Heading.normalized()])
	}
	return sb.String()
}

// String renders the start cell followed by one arrow per step.
func (w Walk) String() string {
	if len(w.steps) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(w.steps[0].Position.String())
	sb.WriteByte(' ')
	for _, s := range w.steps {
		sb.WriteRune(s.Heading.Glyph())
	}
	return sb.String()
}

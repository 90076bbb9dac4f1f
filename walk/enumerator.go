package walk

import "context"

// Probe reports whether another walk is available, searching until one is
// found or the frontier is empty. A true result makes the next Consume
// succeed. Once the engine is exhausted Probe keeps returning false without
// doing any work.
func (e *Engine) Probe() bool {
	ok, _ := e.ProbeWithin(context.Background(), 0)
	return ok
}

// ProbeWithin is Probe bounded by a number of frontier pops and by ctx.
// maxPops <= 0 means no pop limit. When the budget runs out it returns
// ErrStepBudgetExceeded, and when ctx is done it returns ctx.Err(); in both
// cases the frontier is kept and a later probe resumes the search.
func (e *Engine) ProbeWithin(ctx context.Context, maxPops int) (bool, error) {
	if !e.cached.Empty() {
		e.probed = true
		return true, nil
	}

	for pops := 0; !e.frontier.Empty(); pops++ {
		if maxPops > 0 && pops >= maxPops {
			return false, ErrStepBudgetExceeded
		}
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if e.step() > 0 {
			e.probed = true
			return true, nil
		}
	}
	return false, nil
}

// Consume removes and returns the oldest walk found by the probes so far.
// It fails with ErrInvalidState when no probe has succeeded yet or every
// probed walk has already been consumed.
func (e *Engine) Consume() (Walk, error) {
	if !e.probed {
		return Walk{}, ErrInvalidState
	}
	v, ok := e.cached.Dequeue()
	if !ok {
		return Walk{}, ErrInvalidState
	}
	return v.(Walk), nil
}

// Next probes and consumes in one call. It returns false once the engine is
// exhausted.
func (e *Engine) Next() (Walk, bool) {
	if !e.Probe() {
		return Walk{}, false
	}
	w, err := e.Consume()
	return w, err == nil
}

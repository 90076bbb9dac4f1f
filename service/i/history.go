package i

import "context"

// WalkHistory remembers which walks have been served for a generator scope.
type WalkHistory interface {
	// Remember records key under scope. It reports false if key was already there.
	Remember(ctx context.Context, scope, key string) (bool, error)
}

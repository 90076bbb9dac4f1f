package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/beka-birhanu/sheefra/service/i"
	"github.com/beka-birhanu/sheefra/walk"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inOrder struct{}

func (inOrder) Shuffle(int, func(i, j int)) {}

type discardLogger struct{}

func (discardLogger) Info(string)    {}
func (discardLogger) Warning(string) {}
func (discardLogger) Error(string)   {}

type memoryHistory struct {
	seen map[string]bool
	err  error
	sync.Mutex
}

func newMemoryHistory() *memoryHistory {
	return &memoryHistory{seen: make(map[string]bool)}
}

func (h *memoryHistory) Remember(_ context.Context, scope, key string) (bool, error) {
	h.Lock()
	defer h.Unlock()
	if h.err != nil {
		return false, h.err
	}
	if h.seen[scope+"/"+key] {
		return false, nil
	}
	h.seen[scope+"/"+key] = true
	return true, nil
}

func newManager(t *testing.T, history i.WalkHistory, budget int) *GeneratorManager {
	t.Helper()
	g, err := NewGeneratorManager(&GeneratorConfig{
		History:      history,
		Logger:       discardLogger{},
		StepBudget:   budget,
		MaxDimension: 8,
		Shuffler:     func() walk.Shuffler { return inOrder{} },
	})
	require.NoError(t, err)
	return g
}

func smallBoard() i.GeneratorRequest {
	return i.GeneratorRequest{Width: 3, Height: 3, Length: 5, Parity: walk.ParityCheckerboard}
}

func TestGeneratorManagerOpen(t *testing.T) {
	g := newManager(t, nil, 0)

	t.Run("Opens a session", func(t *testing.T) {
		id, err := g.Open(smallBoard())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
	})

	t.Run("Rejects boards over the limit", func(t *testing.T) {
		_, err := g.Open(i.GeneratorRequest{Width: 9, Height: 3, Length: 5})
		assert.ErrorIs(t, err, ErrBoardTooLarge)
	})

	t.Run("Rejects empty boards", func(t *testing.T) {
		_, err := g.Open(i.GeneratorRequest{Width: 0, Height: 3, Length: 5})
		assert.ErrorIs(t, err, ErrEmptyBoard)
	})

	t.Run("Passes preflight rejections through", func(t *testing.T) {
		_, err := g.Open(i.GeneratorRequest{Width: 1, Height: 5, Length: 5})
		assert.ErrorIs(t, err, walk.ErrDegenerateBoundary)

		_, err = g.Open(i.GeneratorRequest{Width: 2, Height: 2, Length: 10})
		assert.Equal(t, "length-too-long", walk.ConfigurationKind(err))
	})

	t.Run("Applies corners and headings", func(t *testing.T) {
		start := walk.Position{X: 2, Y: 2}
		end := walk.Position{X: 0, Y: 0}
		west, north := walk.West, walk.North
		id, err := g.Open(i.GeneratorRequest{
			Width: 3, Height: 3, Length: 5,
			Start: &start, End: &end, StartHeading: &west, EndHeading: &north,
			Parity: walk.ParityCheckerboard,
		})
		require.NoError(t, err)

		w, _, err := g.Next(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, walk.Step{Position: start, Heading: walk.West}, w.Start())
		assert.Equal(t, walk.Step{Position: end, Heading: walk.North}, w.End())
	})
}

func TestGeneratorManagerNext(t *testing.T) {
	t.Run("Serves every walk once then reports exhaustion", func(t *testing.T) {
		g := newManager(t, newMemoryHistory(), 0)
		id, err := g.Open(smallBoard())
		require.NoError(t, err)

		w, board, err := g.Next(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "0,0 →↓↓→→", w.String())
		assert.Equal(t, 3, board.Width())

		seen := map[string]bool{w.Key(): true}
		for n := 0; n < 2; n++ {
			w, _, err = g.Next(context.Background(), id)
			require.NoError(t, err)
			assert.False(t, seen[w.Key()])
			seen[w.Key()] = true
		}

		_, _, err = g.Next(context.Background(), id)
		assert.ErrorIs(t, err, ErrGeneratorExhausted)
		_, _, err = g.Next(context.Background(), id)
		assert.ErrorIs(t, err, ErrGeneratorExhausted)
	})

	t.Run("History skips walks served by another session", func(t *testing.T) {
		g := newManager(t, newMemoryHistory(), 0)
		first, err := g.Open(smallBoard())
		require.NoError(t, err)
		second, err := g.Open(smallBoard())
		require.NoError(t, err)

		_, _, err = g.Next(context.Background(), first)
		require.NoError(t, err)

		w, _, err := g.Next(context.Background(), second)
		require.NoError(t, err)
		assert.NotEqual(t, "0,0 →↓↓→→", w.String())

		_, _, err = g.Next(context.Background(), first)
		require.NoError(t, err)
		_, _, err = g.Next(context.Background(), second)
		assert.ErrorIs(t, err, ErrGeneratorExhausted)
	})

	t.Run("History failures do not block serving", func(t *testing.T) {
		history := newMemoryHistory()
		history.err = errors.New("connection refused")
		g := newManager(t, history, 0)
		id, err := g.Open(smallBoard())
		require.NoError(t, err)

		w, _, err := g.Next(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 5, w.Len())
	})

	t.Run("Step budget pauses and resumes", func(t *testing.T) {
		g := newManager(t, nil, 1)
		id, err := g.Open(smallBoard())
		require.NoError(t, err)

		paused := 0
		var w walk.Walk
		for attempt := 0; attempt < 100; attempt++ {
			w, _, err = g.Next(context.Background(), id)
			if !errors.Is(err, walk.ErrStepBudgetExceeded) {
				break
			}
			paused++
		}
		require.NoError(t, err)
		assert.Positive(t, paused)
		assert.Equal(t, "0,0 →↓↓→→", w.String())
	})

	t.Run("Cancelled context pauses", func(t *testing.T) {
		g := newManager(t, nil, 0)
		id, err := g.Open(smallBoard())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err = g.Next(ctx, id)
		assert.ErrorIs(t, err, context.Canceled)

		w, _, err := g.Next(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "0,0 →↓↓→→", w.String())
	})

	t.Run("Unknown and closed sessions", func(t *testing.T) {
		g := newManager(t, nil, 0)
		_, _, err := g.Next(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrSessionNotFound)

		id, err := g.Open(smallBoard())
		require.NoError(t, err)
		require.NoError(t, g.Close(id))
		assert.ErrorIs(t, g.Close(id), ErrSessionNotFound)
		_, _, err = g.Next(context.Background(), id)
		assert.ErrorIs(t, err, ErrSessionNotFound)

		id, err = g.Open(smallBoard())
		require.NoError(t, err)
		g.StopAll()
		_, _, err = g.Next(context.Background(), id)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("Concurrent callers share a session safely", func(t *testing.T) {
		g := newManager(t, newMemoryHistory(), 0)
		id, err := g.Open(i.GeneratorRequest{Width: 4, Height: 4, Length: 9, Parity: walk.ParityCheckerboard})
		require.NoError(t, err)

		var (
			mu   sync.Mutex
			keys = make(map[string]int)
			wg   sync.WaitGroup
		)
		for n := 0; n < 8; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					w, _, err := g.Next(context.Background(), id)
					if err != nil {
						return
					}
					mu.Lock()
					keys[w.Key()]++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.NotEmpty(t, keys)
		for key, n := range keys {
			assert.Equal(t, 1, n, key)
		}
	})
}

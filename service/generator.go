package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beka-birhanu/sheefra/service/i"
	"github.com/beka-birhanu/sheefra/walk"
	"github.com/google/uuid"
)

const defaultMaxDimension = 64

var (
	ErrBoardTooLarge      = errors.New("board dimension exceeds the limit")
	ErrEmptyBoard         = errors.New("board dimensions must be positive")
	ErrSessionNotFound    = errors.New("no generator session")
	ErrGeneratorExhausted = errors.New("generator has no walks left")
)

type generatorSession struct {
	engine *walk.Engine
	served int
	sync.Mutex
}

// GeneratorManager owns the engine sessions. Each engine is driven by a single
// caller at a time through the session mutex.
type GeneratorManager struct {
	sessions     map[uuid.UUID]*generatorSession
	history      i.WalkHistory
	logger       i.Logger
	stepBudget   int
	timeout      time.Duration
	maxDimension int
	shuffler     func() walk.Shuffler
	sync.RWMutex
}

type GeneratorConfig struct {
	History      i.WalkHistory
	Logger       i.Logger
	StepBudget   int           // frontier pops per Next call, 0 for unlimited
	Timeout      time.Duration // wall clock per Next call, 0 for none
	MaxDimension int
	Shuffler     func() walk.Shuffler // nil seeds each engine from the clock
}

func NewGeneratorManager(c *GeneratorConfig) (*GeneratorManager, error) {
	if c.Logger == nil {
		return nil, errors.New("generator manager needs a logger")
	}
	if c.StepBudget < 0 || c.Timeout < 0 {
		return nil, errors.New("step budget and timeout must not be negative")
	}

	maxDimension := c.MaxDimension
	if maxDimension <= 0 {
		maxDimension = defaultMaxDimension
	}

	return &GeneratorManager{
		sessions:     make(map[uuid.UUID]*generatorSession),
		history:      c.History,
		logger:       c.Logger,
		stepBudget:   c.StepBudget,
		timeout:      c.Timeout,
		maxDimension: maxDimension,
		shuffler:     c.Shuffler,
	}, nil
}

func (g *GeneratorManager) Open(req i.GeneratorRequest) (uuid.UUID, error) {
	if req.Width <= 0 || req.Height <= 0 {
		return uuid.Nil, ErrEmptyBoard
	}
	if req.Width > g.maxDimension || req.Height > g.maxDimension {
		return uuid.Nil, fmt.Errorf("%w: %dx%d, limit %d", ErrBoardTooLarge, req.Width, req.Height, g.maxDimension)
	}

	board := walk.Boundary{
		A: walk.Position{X: 0, Y: 0},
		B: walk.Position{X: req.Width - 1, Y: req.Height - 1},
	}

	opts := []walk.Option{walk.WithParity(req.Parity)}
	if req.Start != nil {
		opts = append(opts, walk.WithStart(*req.Start))
	}
	if req.End != nil {
		opts = append(opts, walk.WithEnd(*req.End))
	}
	if req.StartHeading != nil {
		opts = append(opts, walk.WithStartHeading(*req.StartHeading))
	}
	if req.EndHeading != nil {
		opts = append(opts, walk.WithEndHeading(*req.EndHeading))
	}
	if g.shuffler != nil {
		opts = append(opts, walk.WithShuffler(g.shuffler()))
	}

	engine, err := walk.New(board, req.Length, opts...)
	if err != nil {
		g.logger.Warning(fmt.Sprintf("rejected generator %s length %d: %s", board, req.Length, err))
		return uuid.Nil, err
	}

	id := g.saveSession(engine)
	g.logger.Info(fmt.Sprintf("opened generator %s for %s", id, engine.Scope()))
	return id, nil
}

// Next draws walks from the session until one that the history has not seen
// before turns up. Budget and deadline errors leave the session resumable.
func (g *GeneratorManager) Next(ctx context.Context, id uuid.UUID) (walk.Walk, walk.Boundary, error) {
	s, ok := g.session(id)
	if !ok {
		return walk.Walk{}, walk.Boundary{}, ErrSessionNotFound
	}

	s.Lock()
	defer s.Unlock()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	board := s.engine.Boundary()
	remaining := g.stepBudget
	for {
		before := s.engine.Stats().Pops
		found, err := s.engine.ProbeWithin(ctx, remaining)
		if err != nil {
			g.logger.Warning(fmt.Sprintf("generator %s paused: %s", id, err))
			return walk.Walk{}, board, err
		}
		if !found {
			g.logger.Info(fmt.Sprintf("generator %s exhausted after %d walks", id, s.served))
			return walk.Walk{}, board, ErrGeneratorExhausted
		}

		w, err := s.engine.Consume()
		if err != nil {
			return walk.Walk{}, board, err
		}

		if g.fresh(ctx, s.engine.Scope(), w) {
			s.served++
			return w, board, nil
		}

		if g.stepBudget > 0 {
			remaining -= s.engine.Stats().Pops - before
			if remaining <= 0 {
				return walk.Walk{}, board, walk.ErrStepBudgetExceeded
			}
		}
	}
}

// fresh records w in the history. A history failure is logged and the walk is
// treated as fresh.
func (g *GeneratorManager) fresh(ctx context.Context, scope string, w walk.Walk) bool {
	if g.history == nil {
		return true
	}
	added, err := g.history.Remember(ctx, scope, w.Key())
	if err != nil {
		g.logger.Error(fmt.Sprintf("recording walk in history: %s", err))
		return true
	}
	if !added {
		g.logger.Info(fmt.Sprintf("skipping walk already served for %s", scope))
	}
	return added
}

func (g *GeneratorManager) Close(id uuid.UUID) error {
	g.Lock()
	defer g.Unlock()
	if _, ok := g.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(g.sessions, id)
	g.logger.Info(fmt.Sprintf("closed generator %s", id))
	return nil
}

func (g *GeneratorManager) StopAll() {
	g.Lock()
	defer g.Unlock()
	for id := range g.sessions {
		delete(g.sessions, id)
	}
	g.logger.Info("stopped all generators")
}

func (g *GeneratorManager) session(id uuid.UUID) (*generatorSession, bool) {
	g.RLock()
	defer g.RUnlock()
	s, ok := g.sessions[id]
	return s, ok
}

func (g *GeneratorManager) saveSession(engine *walk.Engine) uuid.UUID {
	g.Lock()
	defer g.Unlock()

	sessionID := uuid.New()
	for {
		if _, ok := g.sessions[sessionID]; !ok {
			break
		}
		sessionID = uuid.New()
	}

	g.sessions[sessionID] = &generatorSession{engine: engine}
	return sessionID
}

/*
Package walk searches for self-avoiding walks of an exact length between two
cells of a rectangular grid.

A walk moves like a turtle: every step either turns left, keeps straight or
turns right, then advances one cell. The Engine explores those moves depth
first in a shuffled order, prunes branches that leave the boundary, cross
themselves or can no longer reach the end in the remaining length, and hands
out completed walks one at a time through Probe and Consume.

An Engine is not safe for concurrent use.
*/
package walk

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/emirpasic/gods/queues/arrayqueue"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// Shuffler randomizes the order in which the three moves are tried.
// *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// State is the enumeration state of an Engine.
type State int

const (
	Exploring State = iota // frontier non-empty, nothing cached
	HasCached              // at least one solution waits for Consume
	Exhausted              // nothing cached, nothing left to explore
)

func (s State) String() string {
	switch s {
	case Exploring:
		return "exploring"
	case HasCached:
		return "has-cached"
	default:
		return "exhausted"
	}
}

// Stats counts the work an Engine has done so far.
type Stats struct {
	Pops      int // frontier nodes expanded
	Pushed    int // candidates pushed onto the frontier
	Pruned    int // candidates discarded by a pruning rule
	Solutions int // walks accepted
	Live      int // nodes currently held by the arena
}

// Option customizes an Engine built by New.
type Option func(*Engine)

// WithStart sets the first cell. Defaults to the boundary's A corner.
func WithStart(p Position) Option {
	return func(e *Engine) { e.cfg.Start = p }
}

// WithEnd sets the last cell. Defaults to the boundary's B corner.
func WithEnd(p Position) Option {
	return func(e *Engine) { e.cfg.End = p }
}

// WithStartHeading sets the heading of the first step. Defaults to East.
func WithStartHeading(h Heading) Option {
	return func(e *Engine) { e.cfg.StartHeading = h }
}

// WithEndHeading sets the heading the last step must have. Defaults to East.
func WithEndHeading(h Heading) Option {
	return func(e *Engine) { e.cfg.EndHeading = h }
}

// WithParity selects the parity pre-check. Defaults to ParityBoundingBox.
func WithParity(r ParityRule) Option {
	return func(e *Engine) { e.cfg.Parity = r }
}

// WithShuffler injects the source of move order randomness.
func WithShuffler(s Shuffler) Option {
	return func(e *Engine) { e.shuffler = s }
}

// Engine holds the frontier and the solutions of one walk search.
type Engine struct {
	cfg       Config
	shuffler  Shuffler
	nodes     arena
	frontier  *arraystack.Stack // of nodeID, most recent on top
	cached    *arrayqueue.Queue // of Walk, oldest first
	solutions []Walk
	probed    bool
	stats     Stats
}

// New validates the configuration and seeds a search from the start cell.
// Configuration errors wrap ErrConfiguration and no Engine is returned.
func New(boundary Boundary, length int, opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg: Config{
			Boundary:     boundary,
			Length:       length,
			Start:        boundary.A,
			End:          boundary.B,
			StartHeading: East,
			EndHeading:   East,
			Parity:       ParityBoundingBox,
		},
		frontier: arraystack.New(),
		cached:   arrayqueue.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.cfg.StartHeading = e.cfg.StartHeading.normalized()
	e.cfg.EndHeading = e.cfg.EndHeading.normalized()
	if err := Preflight(e.cfg); err != nil {
		return nil, err
	}
	if e.shuffler == nil {
		e.shuffler = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	seed := node{pos: e.cfg.Start, heading: e.cfg.StartHeading, parent: noParent, length: 1}
	if e.accepts(seed) {
		e.solve(noParent, seed)
	}
	e.frontier.Push(e.nodes.alloc(seed))
	return e, nil
}

// Boundary returns the region walks must stay in.
func (e *Engine) Boundary() Boundary { return e.cfg.Boundary }

// Length returns the number of steps every walk has.
func (e *Engine) Length() int { return e.cfg.Length }

// Start returns the first cell of every walk.
func (e *Engine) Start() Position { return e.cfg.Start }

// End returns the last cell of every walk.
func (e *Engine) End() Position { return e.cfg.End }

func (e *Engine) StartHeading() Heading { return e.cfg.StartHeading }

func (e *Engine) EndHeading() Heading { return e.cfg.EndHeading }

// Config returns the validated configuration.
func (e *Engine) Config() Config { return e.cfg }

// Stats returns the work counters.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.Live = e.nodes.live
	return s
}

// Solutions returns every walk accepted so far in discovery order,
// including walks not yet consumed.
func (e *Engine) Solutions() []Walk {
	return append([]Walk(nil), e.solutions...)
}

// State reports where the engine is in the enumeration protocol.
func (e *Engine) State() State {
	switch {
	case !e.cached.Empty():
		return HasCached
	case !e.frontier.Empty():
		return Exploring
	default:
		return Exhausted
	}
}

// Scope fingerprints the configuration. Engines with equal scopes search the
// same space.
func (e *Engine) Scope() string {
	c := e.cfg
	return c.Boundary.String() +
		"|" + strconv.Itoa(c.Length) +
		"|" + c.Start.String() + string("NESW"[c.StartHeading.normalized()]) +
		">" + c.End.String() + string("NESW"[c.EndHeading.normalized()])
}

var moves = [3]Turn{TurnLeft, Straight, TurnRight}

// step expands the most recent frontier node and returns how many solutions
// it produced. It returns -1 when the frontier is empty.
func (e *Engine) step() int {
	top, ok := e.frontier.Pop()
	if !ok {
		return -1
	}
	id := top.(nodeID)
	parent := e.nodes.get(id)
	e.stats.Pops++

	order := moves
	e.shuffler.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	found := 0
	for _, t := range order {
		c := parent.advance(id, t)
		switch {
		case e.prunes(c):
			e.stats.Pruned++
		case e.accepts(c):
			e.solve(id, c)
			found++
		default:
			e.frontier.Push(e.nodes.alloc(c))
			e.stats.Pushed++
		}
	}
	e.nodes.release(id)
	return found
}

// prunes reports whether candidate c can never become part of a solution.
func (e *Engine) prunes(c node) bool {
	if !e.cfg.Boundary.Contains(c.pos) {
		return true
	}
	if c.length > e.cfg.Length {
		return true
	}
	if manhattan(c.pos, e.cfg.End) > e.cfg.Length-c.length {
		return true
	}
	return e.nodes.visits(c.parent, c.pos)
}

// accepts reports whether candidate c is a complete walk.
func (e *Engine) accepts(c node) bool {
	return c.pos == e.cfg.End && c.heading == e.cfg.EndHeading && c.length == e.cfg.Length
}

func (e *Engine) solve(parent nodeID, c node) {
	w := e.nodes.walkOf(parent, c)
	e.cached.Enqueue(w)
	e.solutions = append(e.solutions, w)
	e.stats.Solutions++
}

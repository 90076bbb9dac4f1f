package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/beka-birhanu/sheefra/maze"
	"github.com/beka-birhanu/sheefra/puzzle"
	"github.com/beka-birhanu/sheefra/service/i"
	"github.com/beka-birhanu/sheefra/walk"
	"github.com/google/uuid"
)

const defaultRevealTTL = time.Hour

var (
	ErrWrongPassphrase = errors.New("wrong passphrase")
	ErrTokenMismatch   = errors.New("token was issued for another puzzle")
)

type Puzzles struct {
	generators i.GeneratorManager
	puzzleRepo i.PuzzleRepo
	tokenizer  i.Tokenizer
	logger     i.Logger
	revealTTL  time.Duration
	noise      func() *rand.Rand
}

type PuzzlesConfig struct {
	Generators i.GeneratorManager
	PuzzleRepo i.PuzzleRepo
	Tokenizer  i.Tokenizer
	Logger     i.Logger
	RevealTTL  time.Duration
	Noise      func() *rand.Rand // source of fill runes, nil seeds from the clock
}

func NewPuzzleService(c *PuzzlesConfig) (*Puzzles, error) {
	if c.Generators == nil || c.PuzzleRepo == nil || c.Tokenizer == nil || c.Logger == nil {
		return nil, errors.New("puzzle service needs generators, a repo, a tokenizer and a logger")
	}

	p := &Puzzles{
		generators: c.Generators,
		puzzleRepo: c.PuzzleRepo,
		tokenizer:  c.Tokenizer,
		logger:     c.Logger,
		revealTTL:  c.RevealTTL,
		noise:      c.Noise,
	}
	if p.revealTTL <= 0 {
		p.revealTTL = defaultRevealTTL
	}
	if p.noise == nil {
		p.noise = func() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) }
	}
	return p, nil
}

// Create validates the request before drawing, so a rejected request does not
// use up a walk.
func (p *Puzzles) Create(ctx context.Context, req i.PuzzleRequest) (*puzzle.Puzzle, error) {
	if err := puzzle.Validate(req.Message, req.Passphrase); err != nil {
		return nil, err
	}

	w, board, err := p.generators.Next(ctx, req.GeneratorID)
	if err != nil {
		return nil, err
	}

	m, err := maze.New(board, w, req.Message, req.Fill, p.noise())
	if err != nil {
		return nil, err
	}

	pz, err := puzzle.New(puzzle.Config{
		ID:          uuid.New(),
		GeneratorID: req.GeneratorID,
		Message:     req.Message,
		Maze:        m,
		Walk:        w,
		Passphrase:  req.Passphrase,
	})
	if err != nil {
		return nil, err
	}

	if err := p.puzzleRepo.Save(ctx, pz); err != nil {
		p.logger.Error(fmt.Sprintf("saving puzzle %s: %s", pz.ID, err))
		return nil, err
	}

	p.logger.Info(fmt.Sprintf("published puzzle %s from generator %s", pz.ID, req.GeneratorID))
	return pz, nil
}

func (p *Puzzles) Get(ctx context.Context, id uuid.UUID) (*puzzle.Puzzle, error) {
	return p.puzzleRepo.ByID(ctx, id)
}

func (p *Puzzles) Reveal(ctx context.Context, id uuid.UUID, passphrase string) (string, error) {
	pz, err := p.puzzleRepo.ByID(ctx, id)
	if err != nil {
		return "", err
	}

	if !pz.VerifyPassphrase(passphrase) {
		p.logger.Warning(fmt.Sprintf("wrong passphrase for puzzle %s", id))
		return "", ErrWrongPassphrase
	}

	return p.tokenizer.Issue(pz.ID, p.revealTTL)
}

func (p *Puzzles) Solution(ctx context.Context, id uuid.UUID, token string) (walk.Walk, error) {
	granted, err := p.tokenizer.Verify(token)
	if err != nil {
		return walk.Walk{}, err
	}
	if granted != id {
		return walk.Walk{}, ErrTokenMismatch
	}

	pz, err := p.puzzleRepo.ByID(ctx, id)
	if err != nil {
		return walk.Walk{}, err
	}
	return pz.Walk()
}

package puzzle

import (
	"errors"
	"time"

	"github.com/beka-birhanu/sheefra/maze"
	"github.com/beka-birhanu/sheefra/walk"
	"github.com/google/uuid"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPassphraseStrengthScore = 3
	maxMessageLength           = 4096
)

var (
	ErrWeakPassphrase  = errors.New("weak passphrase")
	ErrMessageTooLong  = errors.New("message too long")
	ErrMissingMaze     = errors.New("puzzle needs a rendered maze")
	ErrNotFound        = errors.New("puzzle not found")
	passphraseHashCost = bcrypt.DefaultCost
)

// Puzzle represents the BSON version of a published message maze.
type Puzzle struct {
	ID             uuid.UUID   `bson:"_id"`
	GeneratorID    uuid.UUID   `bson:"generatorID"`
	Width          int         `bson:"width"`
	Height         int         `bson:"height"`
	Length         int         `bson:"length"`
	Rows           []string    `bson:"rows"`
	Rotations      [][]int     `bson:"rotations"`
	Path           []walk.Step `bson:"path"`
	PassphraseHash string      `bson:"passphraseHash"`
	CreatedAt      time.Time   `bson:"createdAt"`
}

// Config holds the parts a Puzzle is assembled from.
type Config struct {
	ID          uuid.UUID
	GeneratorID uuid.UUID
	Message     string
	Maze        *maze.MessageMaze
	Walk        walk.Walk
	Passphrase  string
}

// New creates a Puzzle, hashing the passphrase that guards its solution.
func New(config Config) (*Puzzle, error) {
	if config.Maze == nil {
		return nil, ErrMissingMaze
	}
	if err := Validate(config.Message, config.Passphrase); err != nil {
		return nil, err
	}

	hash, err := hashPassphrase(config.Passphrase)
	if err != nil {
		return nil, err
	}

	return &Puzzle{
		ID:             config.ID,
		GeneratorID:    config.GeneratorID,
		Width:          config.Maze.Width(),
		Height:         config.Maze.Height(),
		Length:         config.Walk.Len(),
		Rows:           config.Maze.Rows(),
		Rotations:      config.Maze.Rotations(),
		Path:           config.Walk.Steps(),
		PassphraseHash: hash,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// VerifyPassphrase verifies if the given passphrase matches the stored hash.
func (p *Puzzle) VerifyPassphrase(passphrase string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(p.PassphraseHash), []byte(passphrase))
	return err == nil
}

// Walk rebuilds the hidden walk from the stored path.
func (p *Puzzle) Walk() (walk.Walk, error) {
	return walk.FromSteps(p.Path)
}

// Validate checks the message length and the strength of the passphrase.
func Validate(message, passphrase string) error {
	if len(message) > maxMessageLength {
		return ErrMessageTooLong
	}
	result := zxcvbn.PasswordStrength(passphrase, nil)
	if result.Score < minPassphraseStrengthScore {
		return ErrWeakPassphrase
	}
	return nil
}

// hashPassphrase generates a bcrypt hash for the given passphrase.
func hashPassphrase(passphrase string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(passphrase), passphraseHashCost)
	return string(bytes), err
}

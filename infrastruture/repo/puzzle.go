package repo

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/sheefra/puzzle"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PuzzleRepo handles the persistence of puzzle models.
type PuzzleRepo struct {
	collection *mongo.Collection
}

// NewPuzzleRepo creates a new PuzzleRepo with the given MongoDB client, database name, and collection name.
func NewPuzzleRepo(client *mongo.Client, dbName, collectionName string) *PuzzleRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &PuzzleRepo{
		collection: collection,
	}
}

// Save inserts or updates a puzzle in the repository.
// If the puzzle already exists, it replaces the existing record.
func (r *PuzzleRepo) Save(ctx context.Context, p *puzzle.Puzzle) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	filter := bson.M{"_id": p.ID}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, filter, p, opts)
	if err != nil {
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves a puzzle by its ID.
// Returns puzzle.ErrNotFound if there is no such puzzle.
func (r *PuzzleRepo) ByID(ctx context.Context, id uuid.UUID) (*puzzle.Puzzle, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var p puzzle.Puzzle
	if err := r.collection.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, puzzle.ErrNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &p, nil
}

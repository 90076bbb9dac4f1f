package history

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/beka-birhanu/sheefra/service/i"
	"github.com/dgraph-io/badger/v3"
)

// BadgerWalkHistory is an embedded WalkHistory. Entries expire after the TTL.
type BadgerWalkHistory struct {
	db  *badger.DB
	ttl time.Duration
	mu  sync.Mutex // serialises check-and-set across transactions
}

// NewBadgerWalkHistory opens the store at path, or an in-memory one when path is empty.
func NewBadgerWalkHistory(path string, ttlSeconds int) (*BadgerWalkHistory, error) {
	dbOpts := badger.DefaultOptions(path)
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false
	if len(path) == 0 {
		dbOpts.InMemory = true
	}

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	return &BadgerWalkHistory{
		db:  db,
		ttl: time.Duration(ttlSeconds) * time.Second,
	}, nil
}

var _ i.WalkHistory = (*BadgerWalkHistory)(nil)

func entryKey(scope, key string) []byte {
	b := make([]byte, 0, len(scope)+1+len(key))
	b = append(b, scope...)
	b = append(b, 0)
	return append(b, key...)
}

func (h *BadgerWalkHistory) Remember(ctx context.Context, scope, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	added := false
	err := h.db.Update(func(txn *badger.Txn) error {
		k := entryKey(scope, key)
		_, err := txn.Get(k)
		if err == nil {
			// already served
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		e := badger.NewEntry(k, nil)
		if h.ttl > 0 {
			e = e.WithTTL(h.ttl)
		}
		added = true
		return txn.SetEntry(e)
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

func (h *BadgerWalkHistory) Close() error {
	return h.db.Close()
}

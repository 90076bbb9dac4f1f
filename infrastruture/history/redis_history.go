package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/sheefra/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "sheefra"
	lockExpiry = 2 * time.Second
	opTimeout  = time.Second
)

// RedisWalkHistory keeps the recently served walks of each scope in a Redis
// sorted set scored by the time they were served.
type RedisWalkHistory struct {
	client   *redis.Client
	locker   *redsync.Redsync
	ttl      time.Duration
	capacity int64
}

// NewRedisWalkHistory initializes a RedisWalkHistory holding up to capacity
// walks per scope for ttlSeconds after the last write.
func NewRedisWalkHistory(client *redis.Client, ttlSeconds, capacity int) (i.WalkHistory, error) {
	if client == nil {
		return nil, errors.New("redis walk history needs a client")
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("history capacity must be positive, got %d", capacity)
	}

	h := &RedisWalkHistory{
		client:   client,
		ttl:      time.Duration(ttlSeconds) * time.Second,
		capacity: int64(capacity),
	}
	pool := goredis.NewPool(client)
	h.locker = redsync.New(pool)
	return h, nil
}

func setKey(scope string) string {
	return fmt.Sprintf("%s:walks:%s", keyPrefix, scope)
}

// Remember adds key to the scope's set unless it is already there, then trims
// the set to the most recent members and refreshes its expiry.
// Waiting for the lock follows ctx. Once the lock is held, the Redis calls and
// the unlock run on a context detached from ctx's cancellation, so an expiring
// caller cannot leave the walk unrecorded or the lock held.
func (h *RedisWalkHistory) Remember(ctx context.Context, scope, key string) (bool, error) {
	setName := setKey(scope)
	mutex := h.locker.NewMutex(setName+":lock", redsync.WithExpiry(lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return false, err
	}

	opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), opTimeout)
	defer cancel()
	defer func() {
		_, _ = mutex.UnlockContext(opCtx)
	}()

	err := h.client.ZScore(opCtx, setName, key).Err()
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, redis.Nil) {
		return false, err
	}

	score := float64(time.Now().UnixNano())
	if err := h.client.ZAdd(opCtx, setName, redis.Z{Score: score, Member: key}).Err(); err != nil {
		return false, err
	}

	// Keep only the newest capacity members.
	if err := h.client.ZRemRangeByRank(opCtx, setName, 0, -h.capacity-1).Err(); err != nil {
		return true, err
	}

	if h.ttl > 0 {
		if err := h.client.Expire(opCtx, setName, h.ttl).Err(); err != nil {
			return true, err
		}
	}
	return true, nil
}

package locker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisLocker implements Locker with Redsync (Redlock on a single Redis).
type RedisLocker struct {
	rs        *redsync.Redsync
	logger    *zap.Logger
	keyPrefix string
}

// NewRedisLocker creates a Redis-based locker. keyPrefix namespaces lock keys
// the same way the cache namespaces its entries.
func NewRedisLocker(client *redis.Client, logger *zap.Logger, keyPrefix string) *RedisLocker {
	return &RedisLocker{
		rs:        redsync.New(goredis.NewPool(client)),
		logger:    logger,
		keyPrefix: keyPrefix,
	}
}

// TryLock makes a single acquisition attempt.
func (r *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (Unlock, bool, error) {
	name := r.buildKey(key)
	mutex := r.rs.NewMutex(name,
		redsync.WithExpiry(ttl),
		redsync.WithTries(1),
	)

	if err := mutex.LockContext(ctx); err != nil {
		if isTaken(err) {
			r.logger.Debug("lock held elsewhere", zap.String("key", key))

			return nil, false, nil
		}

		return nil, false, fmt.Errorf("acquire lock %s: %w", key, err)
	}

	r.logger.Debug("lock acquired",
		zap.String("key", key),
		zap.Duration("ttl", ttl),
	)

	unlock := func(ctx context.Context) error {
		ok, err := mutex.UnlockContext(ctx)
		if err != nil && !errors.Is(err, redsync.ErrLockAlreadyExpired) {
			return fmt.Errorf("release lock %s: %w", key, err)
		}
		if !ok {
			r.logger.Debug("lock already expired", zap.String("key", key))
		}

		return nil
	}

	return unlock, true, nil
}

func (r *RedisLocker) buildKey(key string) string {
	if r.keyPrefix == "" {
		return key
	}

	return r.keyPrefix + ":" + key
}

// isTaken reports whether err means another holder owns the lock.
// Redsync reports contention either as ErrFailed or as an ErrTaken
// ("lock already taken, locked nodes: [0]").
func isTaken(err error) bool {
	var taken *redsync.ErrTaken

	return errors.Is(err, redsync.ErrFailed) ||
		errors.As(err, &taken) ||
		strings.Contains(err.Error(), "lock already taken")
}

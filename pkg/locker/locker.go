// Package locker provides distributed locking for coordinating work across
// gateway instances that share one cache.
package locker

import (
	"context"
	"time"
)

// Unlock releases a held lock. Releasing an expired lock is not an error.
type Unlock func(ctx context.Context) error

// Locker hands out short-lived, non-blocking locks.
// Implementations must be safe for concurrent use.
//
// Typical usage:
//
//	unlock, acquired, err := l.TryLock(ctx, "fill:"+key, 15*time.Second)
//	if err != nil {
//	    return err
//	}
//	if !acquired {
//	    // Another instance is doing the work.
//	    return nil
//	}
//	defer unlock(context.Background())
type Locker interface {
	// TryLock attempts to take the lock once. It returns acquired=false, nil
	// error when another holder has it. The lock expires after ttl if not released.
	TryLock(ctx context.Context, key string, ttl time.Duration) (Unlock, bool, error)
}

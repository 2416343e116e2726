// Package facade implements the cache-backed facade in front of every vendor call.
//
// Get serves a live cache entry when one exists. On a miss it runs the loader
// at most once per key per instance (singleflight), and optionally at most once
// per key across instances (fill lock), then stores successful bodies with the
// category TTL. Failures are never stored.
package facade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"what2watch-gateway/internal/domain"
	"what2watch-gateway/internal/metrics"
	"what2watch-gateway/pkg/locker"
)

// Status tells the caller where a body came from. It is exposed as the X-Cache header.
type Status string

const (
	StatusHit    Status = "HIT"
	StatusMiss   Status = "MISS"
	StatusBypass Status = "BYPASS"
)

// fillLockPrefix namespaces fill locks away from cache entries.
const fillLockPrefix = "fill:"

// unlockTimeout bounds releasing a fill lock after the request context is gone.
const unlockTimeout = 2 * time.Second

// Result is a vendor body plus its cache status.
type Result struct {
	Body   []byte
	Status Status
}

// Loader fetches a fresh body from a vendor.
type Loader func(ctx context.Context) ([]byte, error)

// Facade deduplicates vendor calls through a shared cache.
type Facade struct {
	cache   domain.Cache
	policy  domain.TTLPolicy
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *zap.Logger

	locker       locker.Locker
	lockTTL      time.Duration
	pollInterval time.Duration
}

// Option configures a Facade.
type Option func(*Facade)

// WithMetrics records cache results on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Facade) {
		f.metrics = m
	}
}

// WithFillLock coordinates misses across instances. While another instance
// holds the fill lock for a key, the flight leader polls the cache every
// pollInterval for up to ttl before calling the vendor itself.
func WithFillLock(l locker.Locker, ttl, pollInterval time.Duration) Option {
	return func(f *Facade) {
		f.locker = l
		f.lockTTL = ttl
		f.pollInterval = pollInterval
	}
}

// New creates a Facade.
func New(cache domain.Cache, policy domain.TTLPolicy, logger *zap.Logger, opts ...Option) *Facade {
	f := &Facade{
		cache:  cache,
		policy: policy,
		logger: logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.metrics == nil {
		f.metrics = metrics.NewNop()
	}
	if f.pollInterval <= 0 {
		f.pollInterval = 100 * time.Millisecond
	}

	return f
}

// Get returns the body for q, from cache when live, otherwise from load.
// Errors from load are returned unchanged.
func (f *Facade) Get(ctx context.Context, q domain.Query, load Loader) (Result, error) {
	category := string(q.Category)

	ttl := f.policy.TTL(q.Category)
	if ttl <= 0 {
		f.metrics.CacheRequests.WithLabelValues(category, metrics.ResultBypass).Inc()

		body, err := load(ctx)
		if err != nil {
			return Result{}, err
		}

		return Result{Body: body, Status: StatusBypass}, nil
	}

	key := q.Key()
	if body := f.lookup(ctx, key); body != nil {
		f.metrics.CacheRequests.WithLabelValues(category, metrics.ResultHit).Inc()

		return Result{Body: body, Status: StatusHit}, nil
	}
	f.metrics.CacheRequests.WithLabelValues(category, metrics.ResultMiss).Inc()

	body, err := f.fill(ctx, category, key, ttl, load)
	if err != nil {
		return Result{}, err
	}

	return Result{Body: body, Status: StatusMiss}, nil
}

// fill joins or leads the in-flight load for key.
func (f *Facade) fill(ctx context.Context, category, key string, ttl time.Duration, load Loader) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		leader := false
		ch := f.group.DoChan(key, func() (interface{}, error) {
			leader = true

			return f.loadAndStore(ctx, key, ttl, load)
		})

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s: %w", key, ctx.Err())
		case res := <-ch:
			if !leader {
				f.metrics.CoalescedRequests.WithLabelValues(category).Inc()
				f.logger.Debug("coalesced cache miss", zap.String("key", key))
			}
			if res.Err == nil {
				return res.Val.([]byte), nil
			}
			// The leader's caller went away; ours has not, so try once more.
			if !leader && attempt == 0 && isContextErr(res.Err) && ctx.Err() == nil {
				continue
			}

			return nil, res.Err
		}
	}
}

func (f *Facade) loadAndStore(ctx context.Context, key string, ttl time.Duration, load Loader) ([]byte, error) {
	if f.locker != nil {
		unlock, acquired, err := f.locker.TryLock(ctx, fillLockPrefix+key, f.lockTTL)
		switch {
		case err != nil:
			f.logger.Warn("fill lock unavailable", zap.String("key", key), zap.Error(err))
		case acquired:
			defer func() {
				unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), unlockTimeout)
				defer cancel()
				if err := unlock(unlockCtx); err != nil {
					f.logger.Warn("fill lock release failed", zap.String("key", key), zap.Error(err))
				}
			}()
		default:
			if body := f.awaitFill(ctx, key); body != nil {
				return body, nil
			}
		}
	}

	body, err := load(ctx)
	if err != nil {
		return nil, err
	}

	// Detached so the write survives caller cancellation.
	if err := f.cache.Set(context.WithoutCancel(ctx), key, body, ttl); err != nil {
		f.metrics.CacheErrors.WithLabelValues("set").Inc()
		f.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}

	return body, nil
}

// awaitFill polls the cache while another instance fills key.
// Returns nil when the lock TTL elapses or ctx is done first.
func (f *Facade) awaitFill(ctx context.Context, key string) []byte {
	deadline := time.NewTimer(f.lockTTL)
	defer deadline.Stop()
	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-deadline.C:
			f.logger.Debug("fill lock wait timed out", zap.String("key", key))
			return nil
		case <-ticker.C:
			if body := f.lookup(ctx, key); body != nil {
				return body
			}
		}
	}
}

// lookup reads key from the cache. Cache errors count as a miss.
func (f *Facade) lookup(ctx context.Context, key string) []byte {
	body, err := f.cache.Get(ctx, key)
	if err != nil {
		f.metrics.CacheErrors.WithLabelValues("get").Inc()
		f.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))

		return nil
	}

	return body
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

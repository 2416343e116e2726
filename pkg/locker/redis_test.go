package locker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testLockKey = "fill:streaming:search:title=dune"

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestRedisLocker_TryLock_Success(t *testing.T) {
	client, mr := setupTestRedis(t)
	locker := NewRedisLocker(client, zap.NewNop(), "what2watch")

	unlock, acquired, err := locker.TryLock(context.Background(), testLockKey, 5*time.Second)

	require.NoError(t, err)
	assert.True(t, acquired)
	assert.NotNil(t, unlock)
	assert.True(t, mr.Exists("what2watch:"+testLockKey))
}

func TestRedisLocker_TryLock_AlreadyHeld(t *testing.T) {
	client, _ := setupTestRedis(t)
	instance1 := NewRedisLocker(client, zap.NewNop(), "what2watch")
	instance2 := NewRedisLocker(client, zap.NewNop(), "what2watch")
	ctx := context.Background()

	_, acquired1, err := instance1.TryLock(ctx, testLockKey, 5*time.Second)
	require.NoError(t, err)
	require.True(t, acquired1)

	unlock, acquired2, err := instance2.TryLock(ctx, testLockKey, 5*time.Second)
	require.NoError(t, err)
	assert.False(t, acquired2)
	assert.Nil(t, unlock)
}

func TestRedisLocker_Unlock_AllowsReacquire(t *testing.T) {
	client, _ := setupTestRedis(t)
	locker := NewRedisLocker(client, zap.NewNop(), "what2watch")
	ctx := context.Background()

	unlock, acquired, err := locker.TryLock(ctx, testLockKey, 5*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	require.NoError(t, unlock(ctx))

	_, acquired, err = locker.TryLock(ctx, testLockKey, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRedisLocker_Unlock_AfterExpiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	locker := NewRedisLocker(client, zap.NewNop(), "")
	ctx := context.Background()

	unlock, acquired, err := locker.TryLock(ctx, testLockKey, time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	mr.FastForward(2 * time.Second)

	assert.NoError(t, unlock(ctx))
}

func TestRedisLocker_ConcurrentAcquisition(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()

	const numInstances = 5
	results := make(chan bool, numInstances)

	for i := 0; i < numInstances; i++ {
		go func() {
			locker := NewRedisLocker(client, zap.NewNop(), "what2watch")
			_, acquired, _ := locker.TryLock(ctx, testLockKey, 2*time.Second)
			results <- acquired
		}()
	}

	successCount := 0
	for i := 0; i < numInstances; i++ {
		if <-results {
			successCount++
		}
	}

	assert.Equal(t, 1, successCount, "exactly one instance should acquire the lock")
}

func TestRedisLocker_ContextCancellation(t *testing.T) {
	client, _ := setupTestRedis(t)
	locker := NewRedisLocker(client, zap.NewNop(), "what2watch")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, acquired, err := locker.TryLock(ctx, testLockKey, 5*time.Second)

	assert.Error(t, err)
	assert.False(t, acquired)
}

package ratelimit_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruhtouch/contactapi/pkg/ratelimit"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryStore_IncrementAndGet(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := ratelimit.NewMemoryStore(ratelimit.WithStoreClock(clock.Now))
	defer store.Close()
	ctx := context.Background()

	count, ttl, err := store.IncrementAndGet(ctx, "ip", 1, 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 15*time.Minute, ttl)

	clock.Advance(5 * time.Minute)

	// a later call with a different length does not move the expiry
	count, ttl, err = store.IncrementAndGet(ctx, "ip", 2, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, 10*time.Minute, ttl)

	clock.Advance(10 * time.Minute)

	count, ttl, err = store.IncrementAndGet(ctx, "ip", 1, 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "window boundary opens a fresh count")
	assert.Equal(t, 15*time.Minute, ttl)
}

func TestMemoryStore_GetAndDelete(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := ratelimit.NewMemoryStore(ratelimit.WithStoreClock(clock.Now))
	defer store.Close()
	ctx := context.Background()

	count, ttl, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, ttl)

	_, _, err = store.IncrementAndGet(ctx, "k", 2, time.Minute)
	require.NoError(t, err)
	clock.Advance(20 * time.Second)

	count, ttl, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 40*time.Second, ttl)

	require.NoError(t, store.Delete(ctx, "k"))
	count, _, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Zero(t, count)

	_, _, err = store.IncrementAndGet(ctx, "stale", 1, time.Minute)
	require.NoError(t, err)
	clock.Advance(time.Minute)

	count, ttl, err = store.Get(ctx, "stale")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, ttl)
}

func TestMemoryStore_Cleanup(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := ratelimit.NewMemoryStore(
		ratelimit.WithStoreClock(clock.Now),
		ratelimit.WithCleanupInterval(5*time.Millisecond),
	)
	defer store.Close()
	ctx := context.Background()

	_, _, err := store.IncrementAndGet(ctx, "short", 1, time.Second)
	require.NoError(t, err)
	_, _, err = store.IncrementAndGet(ctx, "long", 1, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	clock.Advance(time.Minute)

	assert.Eventually(t, func() bool {
		return store.Len() == 1
	}, time.Second, 5*time.Millisecond)

	count, _, err := store.Get(ctx, "long")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryStore_ConcurrentIncrements(t *testing.T) {
	t.Parallel()

	store := ratelimit.NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	const goroutines = 50
	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = store.IncrementAndGet(ctx, "shared", 1, time.Minute)
		}()
	}
	wg.Wait()

	count, _, err := store.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, int64(goroutines), count)
}

func TestMemoryStore_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	store := ratelimit.NewMemoryStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

package ratelimit_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"cyber-contact-backend/pkg/ratelimit"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClock() *clock {
	return &clock{now: time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)}
}

func newRedisStore(t *testing.T) *ratelimit.RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return ratelimit.NewRedisStore(client, "test:")
}

func stores(t *testing.T) map[string]ratelimit.Store {
	mem := ratelimit.NewMemoryStore()
	t.Cleanup(mem.Close)
	return map[string]ratelimit.Store{
		"memory": mem,
		"redis":  newRedisStore(t),
	}
}

func TestNewSlidingWindow(t *testing.T) {
	t.Parallel()

	mem := ratelimit.NewMemoryStore()
	t.Cleanup(mem.Close)

	tests := []struct {
		name        string
		store       ratelimit.Store
		limit       int
		window      time.Duration
		expectError error
	}{
		{name: "nil store", store: nil, limit: 5, window: time.Minute, expectError: ratelimit.ErrStoreRequired},
		{name: "zero limit", store: mem, limit: 0, window: time.Minute, expectError: ratelimit.ErrInvalidLimit},
		{name: "negative window", store: mem, limit: 5, window: -time.Second, expectError: ratelimit.ErrInvalidWindow},
		{name: "valid", store: mem, limit: 5, window: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sw, err := ratelimit.NewSlidingWindow(tt.store, tt.limit, tt.window)
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, sw)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.limit, sw.Limit())
		})
	}
}

func TestSlidingWindowAllow(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			clk := newClock()
			sw, err := ratelimit.NewSlidingWindow(store, 5, 15*time.Minute, ratelimit.WithClock(clk.Now))
			require.NoError(t, err)
			ctx := context.Background()

			for i := 1; i <= 5; i++ {
				res, err := sw.Allow(ctx, "203.0.113.7")
				require.NoError(t, err)
				assert.True(t, res.Allowed, "request %d", i)
				assert.Equal(t, 5-i, res.Remaining)
				clk.Advance(time.Minute)
			}

			res, err := sw.Allow(ctx, "203.0.113.7")
			require.NoError(t, err)
			assert.False(t, res.Allowed)
			assert.Equal(t, 0, res.Remaining)
			// The first request was at 10:00, so a slot frees at 10:15
			assert.True(t, res.ResetAt.Equal(time.Date(2026, 10, 15, 10, 15, 0, 0, time.UTC)), res.ResetAt)

			// Other keys are independent
			res, err = sw.Allow(ctx, "198.51.100.1")
			require.NoError(t, err)
			assert.True(t, res.Allowed)
		})
	}
}

func TestSlidingWindowSlides(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			clk := newClock()
			sw, err := ratelimit.NewSlidingWindow(store, 2, time.Minute, ratelimit.WithClock(clk.Now))
			require.NoError(t, err)
			ctx := context.Background()

			allow := func() bool {
				res, err := sw.Allow(ctx, "k")
				require.NoError(t, err)
				return res.Allowed
			}

			assert.True(t, allow()) // t=0
			clk.Advance(30 * time.Second)
			assert.True(t, allow()) // t=30s
			assert.False(t, allow())

			// t=60s: the first request has left the window, the second has not
			clk.Advance(30 * time.Second)
			assert.True(t, allow())
			assert.False(t, allow())

			// Rejected requests are not recorded, so the t=30s slot frees at t=90s
			clk.Advance(30 * time.Second)
			assert.True(t, allow())
		})
	}
}

func TestSlidingWindowReset(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			sw, err := ratelimit.NewSlidingWindow(store, 1, time.Hour)
			require.NoError(t, err)
			ctx := context.Background()

			res, err := sw.Allow(ctx, "k")
			require.NoError(t, err)
			require.True(t, res.Allowed)

			require.NoError(t, sw.Reset(ctx, "k"))

			res, err = sw.Allow(ctx, "k")
			require.NoError(t, err)
			assert.True(t, res.Allowed)
		})
	}
}

func TestSlidingWindowEmptyKey(t *testing.T) {
	mem := ratelimit.NewMemoryStore()
	t.Cleanup(mem.Close)
	sw, err := ratelimit.NewSlidingWindow(mem, 1, time.Hour)
	require.NoError(t, err)

	_, err = sw.Allow(context.Background(), "")
	assert.ErrorIs(t, err, ratelimit.ErrKeyRequired)
}

func TestSlidingWindowConcurrent(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			sw, err := ratelimit.NewSlidingWindow(store, 10, time.Hour)
			require.NoError(t, err)

			var (
				wg      sync.WaitGroup
				mu      sync.Mutex
				allowed int
			)
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					res, err := sw.Allow(context.Background(), "shared")
					if err != nil || !res.Allowed {
						return
					}
					mu.Lock()
					allowed++
					mu.Unlock()
				}()
			}
			wg.Wait()

			assert.Equal(t, 10, allowed)
		})
	}
}

func TestRedisStoreUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	sw, err := ratelimit.NewSlidingWindow(ratelimit.NewRedisStore(client, ""), 5, time.Minute)
	require.NoError(t, err)

	_, err = sw.Allow(context.Background(), "k")
	assert.Error(t, err)
}

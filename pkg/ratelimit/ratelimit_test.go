package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ibankit/pkg/ratelimit"
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
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := ratelimit.New(ratelimit.Config{Burst: 0, PerMinute: 60})
	assert.ErrorIs(t, err, ratelimit.ErrInvalidConfig)

	_, err = ratelimit.New(ratelimit.Config{Burst: 1, PerMinute: 0})
	assert.ErrorIs(t, err, ratelimit.ErrInvalidConfig)

	assert.False(t, ratelimit.Config{Burst: 5}.Enabled())
	assert.True(t, ratelimit.Config{Burst: 5, PerMinute: 1}.Enabled())
}

func TestLimiter_Allow(t *testing.T) {
	t.Parallel()

	c := &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l, err := ratelimit.New(ratelimit.Config{Burst: 3, PerMinute: 60}, ratelimit.WithClock(c.Now))
	require.NoError(t, err)

	for i := 2; i >= 0; i-- {
		res := l.Allow("a")
		require.True(t, res.Allowed)
		assert.Equal(t, i, res.Remaining)
		assert.Equal(t, 3, res.Limit)
	}

	res := l.Allow("a")
	assert.False(t, res.Allowed)
	assert.Equal(t, time.Second, res.RetryAfter)

	assert.True(t, l.Allow("b").Allowed, "keys have separate buckets")

	c.Advance(time.Second)
	assert.True(t, l.Allow("a").Allowed)
	assert.False(t, l.Allow("a").Allowed)

	c.Advance(time.Hour)
	res = l.Allow("a")
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Remaining, "refill is capped at burst")
}

func TestLimiter_SweepsIdleKeys(t *testing.T) {
	t.Parallel()

	c := &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l, err := ratelimit.New(ratelimit.Config{Burst: 1, PerMinute: 1}, ratelimit.WithClock(c.Now))
	require.NoError(t, err)

	l.Allow("a")
	l.Allow("b")
	assert.Equal(t, 2, l.Len())

	c.Advance(time.Hour)
	l.Allow("c")
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_Concurrent(t *testing.T) {
	t.Parallel()

	l, err := ratelimit.New(ratelimit.Config{Burst: 50, PerMinute: 1})
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("k").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	l, err := ratelimit.New(ratelimit.Config{Burst: 1, PerMinute: 1})
	require.NoError(t, err)

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := ratelimit.Middleware(l, func(r *http.Request) string { return r.Header.Get("X-Key") }, nil)(ok)

	send := func(key string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Key", key)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec
	}

	rec := send("a")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = send("a")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	for range 3 {
		assert.Equal(t, http.StatusNoContent, send("").Code, "empty key is not limited")
	}
}

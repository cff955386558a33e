// Package ratelimit provides an in-memory token bucket limiter keyed by
// arbitrary strings, usually the client IP, and an HTTP middleware for it.
package ratelimit

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
)

// ErrInvalidConfig is returned by New for non-positive limits.
var ErrInvalidConfig = errors.New("invalid rate limit configuration")

// staleAfter is how long an idle bucket is kept before it is swept.
const staleAfter = 10 * time.Minute

// Config describes one bucket per key: Burst tokens at most, refilled at
// PerMinute tokens per minute.
type Config struct {
	Burst     int `env:"RATE_LIMIT_BURST" envDefault:"30"`
	PerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"600"`
}

// Enabled reports whether limiting is configured. A zero PerMinute disables it.
func (c Config) Enabled() bool {
	return c.PerMinute > 0
}

// Result is the outcome of one Allow call.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type bucket struct {
	tokens float64
	last   time.Time
}

// Limiter is safe for concurrent use.
type Limiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	burst     float64
	perSecond float64
	lastSweep time.Time
	now       func() time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

func New(cfg Config, opts ...Option) (*Limiter, error) {
	if cfg.Burst <= 0 || cfg.PerMinute <= 0 {
		return nil, fmt.Errorf("%w: burst %d, per minute %d", ErrInvalidConfig, cfg.Burst, cfg.PerMinute)
	}
	l := &Limiter{
		buckets:   make(map[string]*bucket),
		burst:     float64(cfg.Burst),
		perSecond: float64(cfg.PerMinute) / 60,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastSweep = l.now()
	return l, nil
}

// Allow takes one token from the bucket of key.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > staleAfter {
		l.sweep(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.burst, last: now}
		l.buckets[key] = b
	} else if elapsed := now.Sub(b.last); elapsed > 0 {
		b.tokens = math.Min(l.burst, b.tokens+elapsed.Seconds()*l.perSecond)
		b.last = now
	}

	res := Result{Limit: int(l.burst)}
	if b.tokens >= 1 {
		b.tokens--
		res.Allowed = true
		res.Remaining = int(b.tokens)
		return res
	}

	missing := 1 - b.tokens
	res.RetryAfter = time.Duration(math.Ceil(missing / l.perSecond * float64(time.Second)))
	return res
}

func (l *Limiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.last) > staleAfter {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

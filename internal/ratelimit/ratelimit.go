package ratelimit

import (
	"sync"
	"time"
)

// Limiter caps the number of attempts per client address inside a fixed
// window. State lives in process memory behind a mutex, so it resets on
// restart and is not shared between instances. That makes it a best
// effort throttle, not a correctness guarantee.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]*entry
	now     func() time.Time
}

type entry struct {
	count   int
	resetAt time.Time
}

// New creates a limiter allowing limit attempts per window per address.
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Allow records an attempt from addr and reports whether it is within
// the limit. The first attempt after a window expires starts a fresh
// count with a new expiry.
func (l *Limiter) Allow(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[addr]
	if !ok || now.After(e.resetAt) {
		l.entries[addr] = &entry{count: 1, resetAt: now.Add(l.window)}
		return true
	}

	e.count++
	return e.count <= l.limit
}

// Remaining returns how many attempts addr has left in its current
// window. An address with no live entry has the full limit available.
func (l *Limiter) Remaining(addr string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[addr]
	if !ok || l.now().After(e.resetAt) {
		return l.limit
	}
	if e.count >= l.limit {
		return 0
	}
	return l.limit - e.count
}

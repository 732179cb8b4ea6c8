package cache

import (
	"strings"
	"sync"
	"time"
)

// Store is a small TTL cache keyed by logical query, e.g. "orders",
// "menu" or "reservations:2026-03-01". List handlers read through it
// and every mutation invalidates the keys it touches, so a stale entry
// can live at most one TTL.
type Store struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// New creates a store whose entries expire after ttl.
func New(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached value for key, if present and not expired.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the store's TTL.
func (s *Store) Set(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, expiresAt: s.now().Add(s.ttl)}
}

// Invalidate drops the given keys.
func (s *Store) Invalidate(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.entries, k)
	}
}

// InvalidatePrefix drops every key starting with prefix. Used for
// families of keys such as "reservations:DATE".
func (s *Store) InvalidatePrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.entries {
		if strings.HasPrefix(k, prefix) {
			delete(s.entries, k)
		}
	}
}

// Txn is an optimistic update on a single key: Begin snapshots the
// current entry, Apply writes the speculative value, and the caller
// finishes with Commit on success or Rollback to restore the snapshot
// after the server rejected the mutation.
type Txn struct {
	store    *Store
	key      string
	prev     entry
	hadPrev  bool
	finished bool
}

// Begin starts an optimistic transaction for key.
func (s *Store) Begin(key string) *Txn {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.entries[key]
	return &Txn{store: s, key: key, prev: prev, hadPrev: ok}
}

// Apply writes the speculative value for the transaction's key.
func (t *Txn) Apply(value interface{}) {
	t.store.Set(t.key, value)
}

// Commit keeps the speculative value.
func (t *Txn) Commit() {
	t.finished = true
}

// Rollback restores the snapshot taken at Begin. Calling it after
// Commit is a no-op, so it is safe to defer.
func (t *Txn) Rollback() {
	if t.finished {
		return
	}
	t.finished = true

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.hadPrev {
		t.store.entries[t.key] = t.prev
	} else {
		delete(t.store.entries, t.key)
	}
}

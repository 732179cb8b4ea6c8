package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGet(t *testing.T) {
	s := New(time.Minute)

	_, ok := s.Get("orders")
	require.False(t, ok)

	s.Set("orders", []string{"a", "b"})
	v, ok := s.Get("orders")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, v)
}

func TestStore_Expiry(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New(time.Minute)
	s.now = func() time.Time { return current }

	s.Set("menu", 42)

	current = current.Add(59 * time.Second)
	_, ok := s.Get("menu")
	assert.True(t, ok)

	current = current.Add(2 * time.Second)
	_, ok = s.Get("menu")
	assert.False(t, ok)
}

func TestStore_Invalidate(t *testing.T) {
	s := New(time.Minute)
	s.Set("orders", 1)
	s.Set("menu", 2)

	s.Invalidate("orders")

	_, ok := s.Get("orders")
	assert.False(t, ok)
	_, ok = s.Get("menu")
	assert.True(t, ok)
}

func TestStore_InvalidatePrefix(t *testing.T) {
	s := New(time.Minute)
	s.Set("reservations:2026-03-01", 1)
	s.Set("reservations:2026-03-02", 2)
	s.Set("orders", 3)

	s.InvalidatePrefix("reservations:")

	_, ok := s.Get("reservations:2026-03-01")
	assert.False(t, ok)
	_, ok = s.Get("reservations:2026-03-02")
	assert.False(t, ok)
	_, ok = s.Get("orders")
	assert.True(t, ok)
}

func TestTxn_CommitKeepsSpeculativeValue(t *testing.T) {
	s := New(time.Minute)
	s.Set("tables", "available")

	txn := s.Begin("tables")
	txn.Apply("occupied")
	txn.Commit()

	v, ok := s.Get("tables")
	require.True(t, ok)
	assert.Equal(t, "occupied", v)
}

func TestTxn_RollbackRestoresSnapshot(t *testing.T) {
	s := New(time.Minute)
	s.Set("tables", "available")

	txn := s.Begin("tables")
	txn.Apply("occupied")
	txn.Rollback()

	v, ok := s.Get("tables")
	require.True(t, ok)
	assert.Equal(t, "available", v)
}

func TestTxn_RollbackRemovesValueWhenKeyWasEmpty(t *testing.T) {
	s := New(time.Minute)

	txn := s.Begin("tables")
	txn.Apply("occupied")
	txn.Rollback()

	_, ok := s.Get("tables")
	assert.False(t, ok)
}

func TestTxn_RollbackAfterCommitIsNoop(t *testing.T) {
	s := New(time.Minute)
	s.Set("tables", "available")

	txn := s.Begin("tables")
	txn.Apply("occupied")
	txn.Commit()
	txn.Rollback()

	v, _ := s.Get("tables")
	assert.Equal(t, "occupied", v)
}

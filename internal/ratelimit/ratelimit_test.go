package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	l := New(10, time.Hour)

	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "attempt %d should be allowed", i+1)
	}

	// 11th attempt inside the window must be rejected.
	assert.False(t, l.Allow("10.0.0.1"))
	assert.Equal(t, 0, l.Remaining("10.0.0.1"))
}

func TestLimiter_AddressesAreIndependent(t *testing.T) {
	l := New(2, time.Hour)

	require.True(t, l.Allow("10.0.0.1"))
	require.True(t, l.Allow("10.0.0.1"))
	require.False(t, l.Allow("10.0.0.1"))

	// A different address still has its full budget.
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestLimiter_WindowExpiryResetsCount(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := New(3, time.Hour)
	l.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		require.True(t, l.Allow("10.0.0.1"))
	}
	require.False(t, l.Allow("10.0.0.1"))

	// Just before expiry the address is still blocked.
	current = current.Add(time.Hour)
	assert.False(t, l.Allow("10.0.0.1"))

	// Once the window has elapsed the counter starts over at 1.
	current = current.Add(time.Second)
	assert.True(t, l.Allow("10.0.0.1"))
	assert.Equal(t, 2, l.Remaining("10.0.0.1"))
}

func TestLimiter_RemainingForUnknownAddress(t *testing.T) {
	l := New(5, time.Hour)
	assert.Equal(t, 5, l.Remaining("10.9.9.9"))
}

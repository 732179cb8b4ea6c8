package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floor-manager-backend/internal/cache"
)

func TestSubscriber_InsertInvalidatesAndNotifies(t *testing.T) {
	store := cache.New(time.Minute)
	store.Set("orders", []int{1, 2})

	var got []Event
	s := NewSubscriber(nil, store, func(ev Event) { got = append(got, ev) })

	s.handle([]byte(`{"action":"INSERT","order_id":7,"table_number":"T-4","total":42.5}`))

	_, ok := store.Get("orders")
	assert.False(t, ok, "order list cache should be dropped")

	require.Len(t, got, 1)
	assert.Equal(t, "T-4", got[0].TableNumber)
	assert.Equal(t, 42.5, got[0].Total)
}

func TestSubscriber_UpdateAndDeleteInvalidateSilently(t *testing.T) {
	store := cache.New(time.Minute)

	var notified int
	s := NewSubscriber(nil, store, func(Event) { notified++ })

	for _, action := range []string{ActionUpdate, ActionDelete} {
		store.Set("orders", "cached")
		s.handle([]byte(`{"action":"` + action + `","order_id":7}`))

		_, ok := store.Get("orders")
		assert.False(t, ok, "action %s should invalidate", action)
	}
	assert.Equal(t, 0, notified)
}

func TestSubscriber_MalformedPayloadIsIgnored(t *testing.T) {
	store := cache.New(time.Minute)
	store.Set("orders", "cached")

	s := NewSubscriber(nil, store, nil)
	s.handle([]byte(`{not json`))

	// A payload we can't decode changes nothing.
	_, ok := store.Get("orders")
	assert.True(t, ok)
}

func TestSubscriber_StopWithoutStartIsNoop(t *testing.T) {
	s := NewSubscriber(nil, cache.New(time.Minute), nil)
	s.Stop()
	s.Stop()
}

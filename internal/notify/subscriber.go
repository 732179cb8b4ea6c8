package notify

import (
	"encoding/json"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"floor-manager-backend/internal/cache"
)

// NotifyFunc receives the staff-facing notification for a new order.
type NotifyFunc func(ev Event)

// Subscriber keeps a standing subscription on the order event queue.
// Inserts invalidate the cached order list and trigger the staff
// notification; updates and deletes invalidate silently. Start and
// Stop are idempotent so repeated lifecycle cycles are harmless.
type Subscriber struct {
	broker *Broker
	cache  *cache.Store
	notify NotifyFunc

	mu      sync.Mutex
	started bool
	done    chan struct{}
}

// NewSubscriber wires a subscriber to the broker, the query cache and
// an optional notification callback.
func NewSubscriber(broker *Broker, store *cache.Store, notify NotifyFunc) *Subscriber {
	return &Subscriber{broker: broker, cache: store, notify: notify}
}

// Start begins consuming events. Calling Start on a running subscriber
// is a no-op.
func (s *Subscriber) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	deliveries, err := s.broker.Consume()
	if err != nil {
		return err
	}

	s.started = true
	s.done = make(chan struct{})
	go s.run(deliveries, s.done)
	return nil
}

// Stop ends consumption. Calling Stop on a stopped subscriber is a
// no-op.
func (s *Subscriber) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	close(s.done)
}

func (s *Subscriber) run(deliveries <-chan amqp.Delivery, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			s.handle(d.Body)
			d.Ack(false)
		}
	}
}

func (s *Subscriber) handle(body []byte) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		log.Printf("Error decoding order event: %v", err)
		return
	}

	// The cached list is always dropped; consumers refetch instead of
	// patching from the payload.
	s.cache.Invalidate("orders")

	if ev.Action == ActionInsert && s.notify != nil {
		s.notify(ev)
	}
}

// Package broadcast provides the fan-out bus behind live order tracking.
// Two implementations exist: an in-process bus for a single node and a
// Redis pub/sub bus that keeps subscribers on different replicas in sync.
package broadcast

import (
	"context"
	"sync"

	"orderflow/internal/core/ports"
)

// subscriberBuffer bounds the per-subscriber queue. A subscriber that
// falls this far behind loses messages rather than stalling the publisher;
// tracking updates are best-effort by contract.
const subscriberBuffer = 16

// InProcessBroadcaster fans payloads out to in-memory subscribers.
// The topic registry is guarded by a mutex; empty topics are removed on
// the last unsubscribe so the map never grows unboundedly.
type InProcessBroadcaster struct {
	mu     sync.Mutex
	topics map[string][]*inProcessSubscription
	closed bool
}

// NewInProcessBroadcaster creates an empty in-process bus.
func NewInProcessBroadcaster() *InProcessBroadcaster {
	return &InProcessBroadcaster{
		topics: make(map[string][]*inProcessSubscription),
	}
}

// Publish delivers payload to every current subscriber of orderID.
// Delivery is non-blocking: a subscriber with a full buffer misses this
// payload, the others still receive it.
func (b *InProcessBroadcaster) Publish(_ context.Context, orderID string, payload []byte) error {
	b.mu.Lock()
	subscribers := make([]*inProcessSubscription, len(b.topics[orderID]))
	copy(subscribers, b.topics[orderID])
	b.mu.Unlock()

	for _, subscriber := range subscribers {
		select {
		case subscriber.ch <- payload:
		default:
		}
	}
	return nil
}

// Subscribe registers a new subscriber for orderID.
func (b *InProcessBroadcaster) Subscribe(_ context.Context, orderID string) (ports.Subscription, error) {
	subscription := &inProcessSubscription{
		bus:     b,
		orderID: orderID,
		ch:      make(chan []byte, subscriberBuffer),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(subscription.ch)
		return subscription, nil
	}
	b.topics[orderID] = append(b.topics[orderID], subscription)
	return subscription, nil
}

// Shutdown closes every subscription and rejects new ones.
func (b *InProcessBroadcaster) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, subscribers := range b.topics {
		for _, subscriber := range subscribers {
			close(subscriber.ch)
		}
	}
	b.topics = make(map[string][]*inProcessSubscription)
}

func (b *InProcessBroadcaster) unsubscribe(subscription *inProcessSubscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	subscribers := b.topics[subscription.orderID]
	for i, candidate := range subscribers {
		if candidate == subscription {
			subscribers = append(subscribers[:i], subscribers[i+1:]...)
			close(subscription.ch)
			break
		}
	}

	if len(subscribers) == 0 {
		delete(b.topics, subscription.orderID)
	} else {
		b.topics[subscription.orderID] = subscribers
	}
}

type inProcessSubscription struct {
	bus     *InProcessBroadcaster
	orderID string
	ch      chan []byte
	once    sync.Once
}

// Messages returns the subscriber's payload feed. The channel closes when
// the subscription is closed or the bus shuts down.
func (s *inProcessSubscription) Messages() <-chan []byte {
	return s.ch
}

// Close unregisters the subscriber and closes its feed.
func (s *inProcessSubscription) Close() error {
	s.once.Do(func() {
		s.bus.unsubscribe(s)
	})
	return nil
}

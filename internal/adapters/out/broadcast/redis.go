package broadcast

import (
	"context"

	"github.com/redis/go-redis/v9"

	"orderflow/internal/core/ports"
)

const channelPrefix = "tracking.order."

// RedisBroadcaster fans payloads out through Redis pub/sub, one channel
// per order id. It lets hubs on different replicas see every broadcast
// regardless of which replica handled the originating command.
type RedisBroadcaster struct {
	client *redis.Client
}

// NewRedisBroadcaster wraps an existing Redis client.
func NewRedisBroadcaster(client *redis.Client) *RedisBroadcaster {
	return &RedisBroadcaster{client: client}
}

// Publish sends payload to the order's channel. Subscribers on every
// replica receive it; with no subscribers the payload is dropped, which
// matches the best-effort tracking contract.
func (b *RedisBroadcaster) Publish(ctx context.Context, orderID string, payload []byte) error {
	return b.client.Publish(ctx, channelPrefix+orderID, payload).Err()
}

// Subscribe opens a pub/sub subscription for the order's channel.
func (b *RedisBroadcaster) Subscribe(ctx context.Context, orderID string) (ports.Subscription, error) {
	pubsub := b.client.Subscribe(ctx, channelPrefix+orderID)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	subscription := &redisSubscription{
		pubsub: pubsub,
		ch:     make(chan []byte, subscriberBuffer),
	}
	go subscription.forward()
	return subscription, nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	ch     chan []byte
}

func (s *redisSubscription) forward() {
	defer close(s.ch)
	for message := range s.pubsub.Channel() {
		s.ch <- []byte(message.Payload)
	}
}

// Messages returns the subscriber's payload feed. The channel closes
// once the underlying pub/sub connection is closed.
func (s *redisSubscription) Messages() <-chan []byte {
	return s.ch
}

// Close tears down the pub/sub connection, which in turn closes the feed.
func (s *redisSubscription) Close() error {
	return s.pubsub.Close()
}

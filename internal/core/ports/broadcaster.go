package ports

import "context"

// Subscription is a live feed of broadcast payloads for one order.
// Messages is closed after Close returns or the broadcaster shuts down.
type Subscription interface {
	Messages() <-chan []byte
	Close() error
}

// Broadcaster fans tracking payloads out to everyone watching an order.
// Topics are order business identifiers. The in-process implementation
// serves a single node; the Redis implementation spans replicas.
type Broadcaster interface {
	// Publish delivers payload to all current subscribers of orderID.
	// Publishing to a topic nobody watches is a no-op, not an error.
	Publish(ctx context.Context, orderID string, payload []byte) error

	// Subscribe registers interest in orderID. The caller must Close the
	// subscription when done or the topic entry leaks.
	Subscribe(ctx context.Context, orderID string) (Subscription, error)
}

package ws

import (
	"context"
	"log/slog"
	"sync"

	"orderflow/internal/core/ports"
)

// Hub fans broadcast payloads out to the WebSocket clients watching each
// order. One bus subscription is held per order with at least one watcher;
// the last client leaving closes it and drops the room.
type Hub struct {
	broadcaster ports.Broadcaster
	logger      *slog.Logger

	mu    sync.Mutex
	rooms map[string]*room
}

type room struct {
	subscription ports.Subscription
	clients      map[*Client]struct{}
}

// NewHub creates a hub on top of the given broadcast bus.
func NewHub(broadcaster ports.Broadcaster, logger *slog.Logger) *Hub {
	return &Hub{
		broadcaster: broadcaster,
		logger:      logger.With("component", "tracking_hub"),
		rooms:       make(map[string]*room),
	}
}

// Join registers client as a watcher of orderID. The first watcher of an
// order opens the bus subscription feeding its room.
func (h *Hub) Join(ctx context.Context, orderID string, client *Client) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	existing, ok := h.rooms[orderID]
	if ok {
		existing.clients[client] = struct{}{}
		return nil
	}

	subscription, err := h.broadcaster.Subscribe(ctx, orderID)
	if err != nil {
		return err
	}
	created := &room{
		subscription: subscription,
		clients:      map[*Client]struct{}{client: {}},
	}
	h.rooms[orderID] = created
	go h.pump(orderID, created)
	return nil
}

// Leave removes client from the order's room. The last leave closes the
// bus subscription and deletes the room.
func (h *Hub) Leave(orderID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(orderID, client)
}

func (h *Hub) removeLocked(orderID string, client *Client) {
	current, ok := h.rooms[orderID]
	if !ok {
		return
	}
	if _, member := current.clients[client]; !member {
		return
	}

	delete(current.clients, client)
	if len(current.clients) == 0 {
		if err := current.subscription.Close(); err != nil {
			h.logger.Warn("failed to close bus subscription", "orderId", orderID, "error", err)
		}
		delete(h.rooms, orderID)
	}
}

// pump forwards every bus payload to the room's current watchers.
// A watcher that cannot keep up is dropped; the others are unaffected.
func (h *Hub) pump(orderID string, r *room) {
	for payload := range r.subscription.Messages() {
		h.mu.Lock()
		watchers := make([]*Client, 0, len(r.clients))
		for watcher := range r.clients {
			watchers = append(watchers, watcher)
		}
		h.mu.Unlock()

		for _, watcher := range watchers {
			if !watcher.Send(payload) {
				h.logger.Warn("dropping slow tracking subscriber", "orderId", orderID)
				h.mu.Lock()
				h.removeLocked(orderID, watcher)
				h.mu.Unlock()
				watcher.CloseSend()
			}
		}
	}
}

// Shutdown closes every room.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for orderID, current := range h.rooms {
		if err := current.subscription.Close(); err != nil {
			h.logger.Warn("failed to close bus subscription", "orderId", orderID, "error", err)
		}
		for watcher := range current.clients {
			watcher.CloseSend()
		}
		delete(h.rooms, orderID)
	}
}

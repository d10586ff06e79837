package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"orderflow/internal/core/domain/services"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 512
	sendBuffer     = 16
)

// Client is one WebSocket subscriber. Outbound payloads go through a
// buffered send channel so a stalled socket never blocks the hub.
type Client struct {
	conn *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// NewClient wraps an upgraded connection.
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

// Send enqueues payload for delivery. It reports false when the client is
// closed or its buffer is full, which the hub treats as falling behind.
func (c *Client) Send(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// Outbound exposes the send queue, mainly so the hub's behavior can be
// observed without a live socket.
func (c *Client) Outbound() <-chan []byte {
	return c.send
}

// CloseSend closes the outbound queue, which ends the write pump.
func (c *Client) CloseSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

type inboundMessage struct {
	Type string `json:"type"`
}

// ReadPump consumes inbound frames until the peer disconnects. The only
// client-to-server message is the keepalive ping, answered in kind.
// onClose runs exactly once when the connection ends.
func (c *Client) ReadPump(onClose func()) {
	defer func() {
		onClose()
		c.CloseSend()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var message inboundMessage
		if err := c.conn.ReadJSON(&message); err != nil {
			return
		}
		if message.Type == services.TypePing {
			pong, err := json.Marshal(services.Envelope{
				Type:      services.TypePong,
				Timestamp: time.Now().UTC(),
			})
			if err != nil {
				continue
			}
			c.Send(pong)
			_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		}
	}
}

// WritePump drains the send channel onto the socket and keeps the
// connection alive with protocol-level pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

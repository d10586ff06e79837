package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// Handler serves GET /ws/orders/:orderId. It admits the subscriber through
// the gate, upgrades the connection, replays the current tracking snapshot
// and then joins the client to the order's hub room.
type Handler struct {
	gate      *ConnectionGate
	hub       *Hub
	orderRepo ports.OrderRepository
	projector services.TrackingProjector
	upgrader  websocket.Upgrader
	logger    *slog.Logger
}

// NewHandler creates the WebSocket tracking handler.
func NewHandler(gate *ConnectionGate, hub *Hub, orderRepo ports.OrderRepository, logger *slog.Logger) *Handler {
	return &Handler{
		gate:      gate,
		hub:       hub,
		orderRepo: orderRepo,
		projector: services.NewTrackingProjector(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "tracking_handler"),
	}
}

type wsError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Track handles one tracking connection.
func (h *Handler) Track(ctx echo.Context) error {
	orderID := ctx.Param("orderId")

	claims, err := h.gate.ParseToken(ctx.QueryParam("token"))
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, wsError{
			Code:    http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	aggregate, err := h.orderRepo.GetByBusinessID(ctx.Request().Context(), orderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, wsError{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, wsError{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load order",
		})
	}

	if err := h.gate.Authorize(claims, aggregate); err != nil {
		return ctx.JSON(http.StatusForbidden, wsError{
			Code:    http.StatusForbidden,
			Message: "Not allowed to track this order",
		})
	}

	conn, err := h.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return err
	}

	client := NewClient(conn)
	// The room subscription outlives this request; the hub owns its lifecycle.
	if err := h.hub.Join(context.Background(), orderID, client); err != nil {
		h.logger.Warn("failed to join tracking room", "orderId", orderID, "error", err)
		_ = conn.Close()
		return nil
	}

	h.sendSnapshot(client, aggregate, orderID)

	go client.WritePump()
	client.ReadPump(func() {
		h.hub.Leave(orderID, client)
	})
	return nil
}

// sendSnapshot replays the order's current state so a newly admitted
// subscriber does not wait for the next transition to see anything.
func (h *Handler) sendSnapshot(client *Client, aggregate *order.Order, orderID string) {
	now := time.Now().UTC()

	orderPayload, err := h.projector.OrderUpdateMessage(aggregate, now)
	if err != nil {
		h.logger.Warn("failed to project order snapshot", "orderId", orderID, "error", err)
	} else {
		client.Send(orderPayload)
	}

	trackingPayload, err := h.projector.TrackingUpdateMessage(aggregate, now)
	if err != nil {
		h.logger.Warn("failed to project tracking snapshot", "orderId", orderID, "error", err)
	} else {
		client.Send(trackingPayload)
	}
}

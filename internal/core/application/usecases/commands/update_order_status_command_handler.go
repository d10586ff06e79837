package commands

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// UpdateOrderStatusCommandHandler applies one status transition to an
// order. The aggregate enforces the transition table and appends exactly
// one status event. The customer notification rides the outbox in the same
// transaction; the live ORDER_UPDATE broadcast goes out after commit and
// is best-effort.
type UpdateOrderStatusCommandHandler struct {
	uowFactory  OrderUoWFactory
	broadcaster ports.Broadcaster
	projector   services.TrackingProjector
	logger      *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for status updates.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	broadcaster ports.Broadcaster,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
		projector:   services.NewTrackingProjector(),
		logger:      logger.With("component", "update_order_status"),
	}
}

// Handle loads the order, applies the transition, enqueues the notification
// and commits. The order write is version-checked, so a concurrent update
// surfaces as a version conflict instead of a lost update.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByBusinessID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.UpdateStatus(
		cmd.NewStatus(), cmd.ActorID(), cmd.Notes(), now, cmd.EstimatedReadyMinutes(),
	); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	notification := NotificationPayload{
		OrderBusinessID: aggregate.BusinessID(),
		CustomerID:      aggregate.Customer().ID,
		Status:          cmd.NewStatus().String(),
		OccurredAt:      now,
	}
	if err = enqueueNotification(ctx, uow, notification, now); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.broadcastOrderUpdate(ctx, aggregate, now)
	return nil
}

func (h *UpdateOrderStatusCommandHandler) broadcastOrderUpdate(ctx context.Context, aggregate *order.Order, now time.Time) {
	message, err := h.projector.OrderUpdateMessage(aggregate, now)
	if err != nil {
		h.logger.Warn("failed to project order update", "orderId", aggregate.BusinessID(), "error", err)
		return
	}

	if err = h.broadcaster.Publish(ctx, aggregate.BusinessID(), message); err != nil {
		h.logger.Warn("failed to publish order update", "orderId", aggregate.BusinessID(), "error", err)
	}
}

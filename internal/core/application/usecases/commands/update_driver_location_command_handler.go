package commands

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// UpdateDriverLocationCommandHandler records a driver position report and
// pushes a TRACKING_UPDATE to live subscribers. The aggregate rejects
// reports from anyone but the assigned driver and outside OutForDelivery.
type UpdateDriverLocationCommandHandler struct {
	uowFactory  OrderUoWFactory
	broadcaster ports.Broadcaster
	projector   services.TrackingProjector
	logger      *slog.Logger
}

// NewUpdateDriverLocationCommandHandler creates a handler for location reports.
func NewUpdateDriverLocationCommandHandler(
	uowFactory OrderUoWFactory,
	broadcaster ports.Broadcaster,
	logger *slog.Logger,
) UpdateDriverLocationCommandHandler {
	return UpdateDriverLocationCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
		projector:   services.NewTrackingProjector(),
		logger:      logger.With("component", "update_driver_location"),
	}
}

// Handle persists the position with a version-checked write, then
// broadcasts best-effort after commit.
func (h *UpdateDriverLocationCommandHandler) Handle(ctx context.Context, cmd UpdateDriverLocationCommand) error {
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

	if err = aggregate.UpdateDriverLocation(cmd.Location(), cmd.ActorID(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	message, err := h.projector.TrackingUpdateMessage(aggregate, now)
	if err != nil {
		h.logger.Warn("failed to project tracking update", "orderId", cmd.OrderID(), "error", err)
		return nil
	}
	if err = h.broadcaster.Publish(ctx, cmd.OrderID(), message); err != nil {
		h.logger.Warn("failed to publish tracking update", "orderId", cmd.OrderID(), "error", err)
	}

	return nil
}

package commands

import (
	"context"
	"time"
)

// AssignDriverCommandHandler attaches a driver to an order. The aggregate
// only accepts assignment while the kitchen is still working (Preparing or
// ReadyForPickup) and computes the estimated delivery time itself.
type AssignDriverCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAssignDriverCommandHandler creates a handler for driver assignment.
func NewAssignDriverCommandHandler(uowFactory OrderUoWFactory) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, assigns the driver and saves with a
// version-checked write.
func (h *AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByBusinessID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.AssignDriver(cmd.Driver(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"
)

// ResetCartCommandHandler removes every line from the customer's cart.
// Resetting an already empty cart succeeds.
type ResetCartCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewResetCartCommandHandler creates a handler for cart resets.
func NewResetCartCommandHandler(uowFactory CartUoWFactory) ResetCartCommandHandler {
	return ResetCartCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle empties the cart and persists the empty state.
func (h *ResetCartCommandHandler) Handle(ctx context.Context, cmd ResetCartCommand) error {
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

	cartRepo := uow.CartRepository()
	aggregate, err := cartRepo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	aggregate.Reset()

	if err = cartRepo.Save(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"
)

// BulkUpdateCartCommandHandler applies a batch of cart line changes inside
// one transaction. The first invalid line aborts the batch and the cart is
// left exactly as it was; a mixed half-applied state is impossible.
type BulkUpdateCartCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewBulkUpdateCartCommandHandler creates a handler for bulk cart updates.
func NewBulkUpdateCartCommandHandler(uowFactory CartUoWFactory) BulkUpdateCartCommandHandler {
	return BulkUpdateCartCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies every line change in order and saves once.
func (h *BulkUpdateCartCommandHandler) Handle(ctx context.Context, cmd BulkUpdateCartCommand) error {
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

	for _, update := range cmd.Updates() {
		if err = aggregate.UpdateItem(update.LineID, update.Quantity); err != nil {
			return err
		}
	}

	if err = cartRepo.Save(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

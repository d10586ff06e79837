package commands

import (
	"context"

	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// AddCartItemCommandHandler prices a dish from the restaurant catalog and
// adds it to the customer's cart. The catalog, not the caller, is the
// source of truth for prices: the cart stores a snapshot of the price at
// add time and merging an identical line keeps the original snapshot.
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
	catalog    ports.CatalogClient
}

// NewAddCartItemCommandHandler creates a handler for cart additions.
func NewAddCartItemCommandHandler(
	uowFactory CartUoWFactory,
	catalog ports.CatalogClient,
) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle validates the dish against the catalog, then adds or merges the
// cart line inside a transaction. A dish or portion that does not exist in
// the restaurant's menu fails with not-found before any write.
func (h *AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	restaurant, err := h.catalog.GetRestaurant(ctx, cmd.RestaurantID())
	if err != nil {
		return err
	}

	dish := restaurant.FindDish(cmd.DishID())
	if dish == nil {
		return errs.NewObjectNotFoundError("dishId", cmd.DishID())
	}

	unitPrice := dish.Price
	portionName := ""
	if cmd.PortionID() != "" {
		portion := dish.FindPortion(cmd.PortionID())
		if portion == nil {
			return errs.NewObjectNotFoundError("portionId", cmd.PortionID())
		}
		unitPrice = portion.Price
		portionName = portion.Name
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	if _, err = aggregate.AddItem(
		cmd.RestaurantID(), cmd.DishID(), dish.Name,
		cmd.PortionID(), portionName,
		cmd.Quantity(), unitPrice,
	); err != nil {
		return err
	}

	if err = cartRepo.Save(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/outbox"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// defaultTaxRate applies when the caller supplies no tax override.
const defaultTaxRate = 0.08

// settlementFeeRate is the platform's cut of the segment subtotal.
const settlementFeeRate = 0.20

// CheckoutCommandHandler runs the checkout transaction: it prices the cart
// into an order, persists the order with a fresh business identifier and an
// initial Placed event, enqueues the settlement fee on the outbox, and
// clears the cart — all atomically. A catalog failure is fatal and aborts
// before any write; settlement delivery happens later from the outbox and
// can never fail the checkout. The initial ORDER_UPDATE broadcast goes out
// after commit and is best-effort.
type CheckoutCommandHandler struct {
	uowFactory  CheckoutUoWFactory
	catalog     ports.CatalogClient
	identity    ports.IdentityClient
	broadcaster ports.Broadcaster
	projector   services.TrackingProjector
	logger      *slog.Logger
}

// NewCheckoutCommandHandler creates a handler for checkouts.
func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	catalog ports.CatalogClient,
	identity ports.IdentityClient,
	broadcaster ports.Broadcaster,
	logger *slog.Logger,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory:  uowFactory,
		catalog:     catalog,
		identity:    identity,
		broadcaster: broadcaster,
		projector:   services.NewTrackingProjector(),
		logger:      logger.With("component", "checkout"),
	}
}

// Handle executes the checkout and returns the new order's business
// identifier. An empty cart is a conflict; a delivery checkout without a
// resolvable address is a validation failure. Items are priced from the
// cart's snapshot prices, never from the live catalog.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	profile, err := h.identity.GetCustomerProfile(ctx, cmd.CustomerID())
	if err != nil {
		return "", err
	}

	customer, err := order.NewCustomer(profile.ID, profile.Name, profile.Email, profile.Phone)
	if err != nil {
		return "", err
	}

	var address *order.Address
	if cmd.Fulfillment() == order.Delivery {
		address, err = resolveAddress(cmd.Address(), profile.DefaultAddress)
		if err != nil {
			return "", err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	customerCart, err := cartRepo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return "", err
	}
	if customerCart.IsEmpty() {
		return "", errs.NewConflictError("cart is empty")
	}

	restaurant, err := h.catalog.GetRestaurant(ctx, customerCart.RestaurantID())
	if err != nil {
		return "", err
	}

	items := make([]order.Item, 0, len(customerCart.Lines()))
	for _, line := range customerCart.Lines() {
		item, itemErr := order.NewItem(
			line.DishID(), line.DishName(), line.PortionName(),
			line.UnitPrice(), line.Quantity(),
		)
		if itemErr != nil {
			return "", itemErr
		}
		items = append(items, item)
	}

	subtotal := customerCart.Subtotal()
	tax := subtotal * defaultTaxRate
	if cmd.TaxOverride() != nil {
		tax = *cmd.TaxOverride()
	}

	deliveryFee := 0.0
	if cmd.Fulfillment() == order.Delivery {
		deliveryFee = restaurant.DeliveryFee
		if cmd.DeliveryFeeOverride() != nil {
			deliveryFee = *cmd.DeliveryFeeOverride()
		}
	}

	now := time.Now().UTC()

	orderRepo := uow.OrderRepository()
	sequence, err := orderRepo.NextDaySequence(ctx, now)
	if err != nil {
		return "", err
	}
	businessID, err := order.FormatBusinessID(now, sequence)
	if err != nil {
		return "", err
	}

	segment, err := order.NewSegment(
		restaurant.ID, restaurant.Name, items,
		subtotal, tax, deliveryFee,
		now, cmd.CustomerID(),
	)
	if err != nil {
		return "", err
	}

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), businessID, customer,
		cmd.Fulfillment(), address, segment, now,
	)
	if err != nil {
		return "", err
	}

	if cmd.PaymentMethod() != "" {
		details := order.PaymentDetails{Method: cmd.PaymentMethod()}
		if paymentErr := aggregate.RecordPayment(order.PaymentPending, details); paymentErr != nil {
			return "", paymentErr
		}
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return "", err
	}

	feePayload, err := json.Marshal(SettlementPayload{
		OrderBusinessID:    businessID,
		RestaurantID:       restaurant.ID,
		Amount:             subtotal * settlementFeeRate,
		BillingPeriodStart: nextWeeklyBillingBoundary(now),
	})
	if err != nil {
		return "", err
	}
	feeMessage, err := outbox.NewMessage(outbox.KindSettlement, feePayload, now)
	if err != nil {
		return "", err
	}
	if err = uow.OutboxRepository().Add(ctx, feeMessage); err != nil {
		return "", err
	}

	customerCart.Reset()
	if err = cartRepo.Save(ctx, customerCart); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	h.broadcastOrderUpdate(ctx, aggregate, now)
	return businessID, nil
}

func (h *CheckoutCommandHandler) broadcastOrderUpdate(ctx context.Context, aggregate *order.Order, now time.Time) {
	message, err := h.projector.OrderUpdateMessage(aggregate, now)
	if err != nil {
		h.logger.Warn("failed to project order update", "orderId", aggregate.BusinessID(), "error", err)
		return
	}

	if err = h.broadcaster.Publish(ctx, aggregate.BusinessID(), message); err != nil {
		h.logger.Warn("failed to publish order update", "orderId", aggregate.BusinessID(), "error", err)
	}
}

// resolveAddress picks the explicit checkout address, falling back to the
// customer's stored default. Delivery without either is a validation failure.
func resolveAddress(explicit *CheckoutAddress, stored *ports.DeliveryAddress) (*order.Address, error) {
	var street, city, postalCode string
	var lat, lng *float64

	switch {
	case explicit != nil:
		street, city, postalCode = explicit.Street, explicit.City, explicit.PostalCode
		lat, lng = explicit.Lat, explicit.Lng
	case stored != nil:
		street, city, postalCode = stored.Street, stored.City, stored.PostalCode
		lat, lng = stored.Lat, stored.Lng
	default:
		return nil, errs.NewValueIsRequiredError("deliveryAddress")
	}

	var location *kernel.GeoPoint
	if lat != nil && lng != nil {
		point, err := kernel.NewGeoPoint(*lat, *lng)
		if err != nil {
			return nil, err
		}
		location = &point
	}

	address, err := order.NewAddress(street, city, postalCode, location)
	if err != nil {
		return nil, err
	}
	return &address, nil
}

package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutAddress is an explicit delivery address supplied with checkout.
// When absent, delivery orders fall back to the customer's stored default.
type CheckoutAddress struct {
	Street     string
	City       string
	PostalCode string
	Lat        *float64
	Lng        *float64
}

// CheckoutCommand converts the customer's cart into a persisted order.
// Tax and delivery fee overrides are optional; when absent, tax defaults
// to a fraction of the subtotal and the fee to the restaurant's default.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	customerID          string
	fulfillment         order.Fulfillment
	paymentMethod       string
	address             *CheckoutAddress
	taxOverride         *float64
	deliveryFeeOverride *float64

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a checkout command.
func NewCheckoutCommand(
	customerID string,
	fulfillment order.Fulfillment,
	paymentMethod string,
	address *CheckoutAddress,
	taxOverride, deliveryFeeOverride *float64,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if customerID == "" {
		return CheckoutCommand{}, errs.NewValueIsRequiredError("customerId")
	}
	if err := fulfillment.Validate(); err != nil {
		return CheckoutCommand{}, err
	}
	if taxOverride != nil && *taxOverride < 0 {
		return CheckoutCommand{}, errs.NewValueIsInvalidError("taxOverride")
	}
	if deliveryFeeOverride != nil && *deliveryFeeOverride < 0 {
		return CheckoutCommand{}, errs.NewValueIsInvalidError("deliveryFeeOverride")
	}

	cmd.customerID = customerID
	cmd.fulfillment = fulfillment
	cmd.paymentMethod = paymentMethod
	cmd.address = address
	cmd.taxOverride = taxOverride
	cmd.deliveryFeeOverride = deliveryFeeOverride
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// CustomerID returns the customer checking out.
func (c CheckoutCommand) CustomerID() string {
	return c.customerID
}

// Fulfillment returns the requested fulfillment type.
func (c CheckoutCommand) Fulfillment() order.Fulfillment {
	return c.fulfillment
}

// PaymentMethod returns the declared payment method, possibly empty.
func (c CheckoutCommand) PaymentMethod() string {
	return c.paymentMethod
}

// Address returns the explicit delivery address, or nil.
func (c CheckoutCommand) Address() *CheckoutAddress {
	return c.address
}

// TaxOverride returns the caller-supplied tax, or nil for the default.
func (c CheckoutCommand) TaxOverride() *float64 {
	return c.taxOverride
}

// DeliveryFeeOverride returns the caller-supplied fee, or nil for the default.
func (c CheckoutCommand) DeliveryFeeOverride() *float64 {
	return c.deliveryFeeOverride
}

package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrUpdateCartItemCommandIsNotConstructed = errors.New(
	"UpdateCartItemCommand must be created via NewUpdateCartItemCommand constructor",
)

// UpdateCartItemCommand changes the quantity of one cart line.
// A quantity below one removes the line.
type UpdateCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID string
	lineID     kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

// NewUpdateCartItemCommand creates a command to change a cart line quantity.
func NewUpdateCartItemCommand(customerID string, lineID kernel.UUID, quantity int) (UpdateCartItemCommand, error) {
	cmd := UpdateCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if customerID == "" {
		return UpdateCartItemCommand{}, errs.NewValueIsRequiredError("customerId")
	}
	if err := lineID.Validate(); err != nil {
		return UpdateCartItemCommand{}, err
	}

	cmd.customerID = customerID
	cmd.lineID = lineID
	cmd.quantity = quantity
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCartItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartItemCommandIsNotConstructed)
}

// CustomerID returns the cart owner's identifier.
func (c UpdateCartItemCommand) CustomerID() string {
	return c.customerID
}

// LineID returns the cart line to update.
func (c UpdateCartItemCommand) LineID() kernel.UUID {
	return c.lineID
}

// Quantity returns the new quantity; below one means removal.
func (c UpdateCartItemCommand) Quantity() int {
	return c.quantity
}

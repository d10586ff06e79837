package commands

import (
	"errors"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrResetCartCommandIsNotConstructed = errors.New(
	"ResetCartCommand must be created via NewResetCartCommand constructor",
)

// ResetCartCommand empties the customer's cart.
type ResetCartCommand struct { //nolint:recvcheck //using for validation
	customerID string

	guard guard.ConstructorGuard
}

// NewResetCartCommand creates a command to empty a cart.
func NewResetCartCommand(customerID string) (ResetCartCommand, error) {
	if customerID == "" {
		return ResetCartCommand{}, errs.NewValueIsRequiredError("customerId")
	}

	return ResetCartCommand{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ResetCartCommand) Validate() error {
	return c.guard.Validate(ErrResetCartCommandIsNotConstructed)
}

// CustomerID returns the cart owner's identifier.
func (c ResetCartCommand) CustomerID() string {
	return c.customerID
}

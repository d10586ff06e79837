package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand attaches a delivery driver to an order.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	orderID string
	driver  order.DriverInfo

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a driver assignment command.
func NewAssignDriverCommand(orderID string, driver order.DriverInfo) (AssignDriverCommand, error) {
	if orderID == "" {
		return AssignDriverCommand{}, errs.NewValueIsRequiredError("orderId")
	}
	if err := driver.Validate(); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		orderID: orderID,
		driver:  driver,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// OrderID returns the order's business identifier.
func (c AssignDriverCommand) OrderID() string {
	return c.orderID
}

// Driver returns the driver being assigned.
func (c AssignDriverCommand) Driver() order.DriverInfo {
	return c.driver
}

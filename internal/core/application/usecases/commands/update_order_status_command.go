package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand moves an order to a new status. The transition
// must be allowed by the status table or the handler fails with a conflict.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID               string
	newStatus             order.Status
	actorID               string
	notes                 string
	estimatedReadyMinutes int

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a status transition command.
// EstimatedReadyMinutes only matters when entering Preparing; zero means
// no estimate.
func NewUpdateOrderStatusCommand(
	orderID string,
	newStatus order.Status,
	actorID, notes string,
	estimatedReadyMinutes int,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if orderID == "" {
		return UpdateOrderStatusCommand{}, errs.NewValueIsRequiredError("orderId")
	}
	if err := newStatus.Validate(); err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	if actorID == "" {
		return UpdateOrderStatusCommand{}, errs.NewValueIsRequiredError("actorId")
	}
	if estimatedReadyMinutes < 0 {
		return UpdateOrderStatusCommand{}, errs.NewValueIsInvalidError("estimatedReadyMinutes")
	}

	cmd.orderID = orderID
	cmd.newStatus = newStatus
	cmd.actorID = actorID
	cmd.notes = notes
	cmd.estimatedReadyMinutes = estimatedReadyMinutes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order's business identifier.
func (c UpdateOrderStatusCommand) OrderID() string {
	return c.orderID
}

// NewStatus returns the requested status.
func (c UpdateOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// ActorID returns who requested the transition.
func (c UpdateOrderStatusCommand) ActorID() string {
	return c.actorID
}

// Notes returns the optional free-text note for the status event.
func (c UpdateOrderStatusCommand) Notes() string {
	return c.notes
}

// EstimatedReadyMinutes returns the kitchen's readiness estimate, or zero.
func (c UpdateOrderStatusCommand) EstimatedReadyMinutes() int {
	return c.estimatedReadyMinutes
}

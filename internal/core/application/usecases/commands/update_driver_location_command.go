package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrUpdateDriverLocationCommandIsNotConstructed = errors.New(
	"UpdateDriverLocationCommand must be created via NewUpdateDriverLocationCommand constructor",
)

// UpdateDriverLocationCommand records a live driver position report.
type UpdateDriverLocationCommand struct { //nolint:recvcheck //using for validation
	orderID  string
	location kernel.GeoPoint
	actorID  string

	guard guard.ConstructorGuard
}

// NewUpdateDriverLocationCommand creates a location report command.
func NewUpdateDriverLocationCommand(orderID string, lat, lng float64, actorID string) (UpdateDriverLocationCommand, error) {
	if orderID == "" {
		return UpdateDriverLocationCommand{}, errs.NewValueIsRequiredError("orderId")
	}
	if actorID == "" {
		return UpdateDriverLocationCommand{}, errs.NewValueIsRequiredError("actorId")
	}

	location, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return UpdateDriverLocationCommand{}, err
	}

	return UpdateDriverLocationCommand{
		orderID:  orderID,
		location: location,
		actorID:  actorID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverLocationCommandIsNotConstructed)
}

// OrderID returns the order's business identifier.
func (c UpdateDriverLocationCommand) OrderID() string {
	return c.orderID
}

// Location returns the reported position.
func (c UpdateDriverLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

// ActorID returns who reported the position. Only the assigned driver may.
func (c UpdateDriverLocationCommand) ActorID() string {
	return c.actorID
}

package queries

import (
	"errors"

	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrGetTrackingSnapshotQueryIsNotConstructed = errors.New(
	"GetTrackingSnapshotQuery must be created via NewGetTrackingSnapshotQuery constructor",
)

// GetTrackingSnapshotQuery retrieves the current tracking view of an order:
// the same data a live subscriber would have seen so far. The snapshot is
// computed from the order on demand and never persisted.
type GetTrackingSnapshotQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

// NewGetTrackingSnapshotQuery creates a tracking snapshot query.
func NewGetTrackingSnapshotQuery(orderID string) (GetTrackingSnapshotQuery, error) {
	if orderID == "" {
		return GetTrackingSnapshotQuery{}, errs.NewValueIsRequiredError("orderId")
	}

	return GetTrackingSnapshotQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTrackingSnapshotQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingSnapshotQueryIsNotConstructed)
}

// OrderID returns the order's business identifier.
func (q GetTrackingSnapshotQuery) OrderID() string {
	return q.orderID
}

// GetTrackingSnapshotQueryResponse combines the order and tracking views.
type GetTrackingSnapshotQueryResponse struct {
	Order    services.OrderUpdate
	Tracking services.TrackingUpdate
}

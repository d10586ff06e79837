package queries

import (
	"context"

	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// GetTrackingSnapshotQueryHandler computes the ephemeral tracking view of
// an order on demand, for clients that poll instead of holding a live
// connection and for newly admitted subscribers catching up.
type GetTrackingSnapshotQueryHandler struct {
	orderRepo ports.OrderRepository
	projector services.TrackingProjector
}

// NewGetTrackingSnapshotQueryHandler creates a handler for tracking snapshots.
func NewGetTrackingSnapshotQueryHandler(orderRepo ports.OrderRepository) GetTrackingSnapshotQueryHandler {
	return GetTrackingSnapshotQueryHandler{
		orderRepo: orderRepo,
		projector: services.NewTrackingProjector(),
	}
}

// Handle returns the snapshot, or not-found for an unknown order.
func (h GetTrackingSnapshotQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingSnapshotQuery,
) (GetTrackingSnapshotQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTrackingSnapshotQueryResponse{}, err
	}

	aggregate, err := h.orderRepo.GetByBusinessID(ctx, query.OrderID())
	if err != nil {
		return GetTrackingSnapshotQueryResponse{}, err
	}

	orderView, err := h.projector.ProjectOrderUpdate(aggregate)
	if err != nil {
		return GetTrackingSnapshotQueryResponse{}, err
	}
	trackingView, err := h.projector.ProjectTrackingUpdate(aggregate)
	if err != nil {
		return GetTrackingSnapshotQueryResponse{}, err
	}

	return GetTrackingSnapshotQueryResponse{
		Order:    *orderView,
		Tracking: *trackingView,
	}, nil
}

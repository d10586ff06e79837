package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Writes are guarded by the aggregate's version: Update compares the
// persisted version against the aggregate's and fails with a version
// conflict when another writer got there first.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The write succeeds only when the stored version matches the
	// version the aggregate was loaded with; the persisted version is
	// then incremented. A concurrent writer surfaces as
	// errs.VersionConflictError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByBusinessID retrieves an order aggregate by its customer-facing
	// identifier, e.g. "ORD-20260115-0042".
	GetByBusinessID(ctx context.Context, businessID string) (*order.Order, error)

	// NextDaySequence allocates the next per-day sequence number used to
	// build business identifiers. Allocation is atomic within the
	// surrounding transaction so concurrent checkouts never share a number.
	NextDaySequence(ctx context.Context, day time.Time) (int64, error)
}

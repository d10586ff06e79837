// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, external collaborators
// and the tracking broadcaster.
package ports

import (
	"context"

	"orderflow/internal/core/domain/model/cart"
)

// CartRepository defines the persistence contract for cart aggregates.
// Carts are keyed by customer: each customer owns at most one cart.
type CartRepository interface {
	// Get retrieves the customer's cart. A customer who has never added
	// an item gets a fresh empty cart, not an error.
	Get(ctx context.Context, customerID string) (*cart.Cart, error)

	// Save persists the cart's full line set, replacing whatever was
	// stored before. Saving an empty cart removes all lines.
	Save(ctx context.Context, aggregate *cart.Cart) error
}

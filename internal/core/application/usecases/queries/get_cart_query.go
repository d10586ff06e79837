// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery retrieves the customer's current cart contents.
type GetCartQuery struct {
	customerID string

	guard guard.ConstructorGuard
}

// NewGetCartQuery creates a query for one customer's cart.
func NewGetCartQuery(customerID string) (GetCartQuery, error) {
	if customerID == "" {
		return GetCartQuery{}, errs.NewValueIsRequiredError("customerId")
	}

	return GetCartQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// CustomerID returns the cart owner's identifier.
func (q GetCartQuery) CustomerID() string {
	return q.customerID
}

// CartLineResponse is one cart line in the read model.
type CartLineResponse struct {
	LineID      kernel.UUID
	DishID      string
	DishName    string
	PortionID   string
	PortionName string
	Quantity    int
	UnitPrice   float64
	TotalPrice  float64
}

// GetCartQueryResponse is the cart read model. An empty cart has no lines
// and an empty restaurant identifier.
type GetCartQueryResponse struct {
	CustomerID   string
	RestaurantID string
	Lines        []CartLineResponse
	Subtotal     float64
}

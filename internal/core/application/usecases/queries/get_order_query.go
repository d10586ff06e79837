package queries

import (
	"errors"
	"time"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order by its business identifier.
type GetOrderQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order.
func NewGetOrderQuery(orderID string) (GetOrderQuery, error) {
	if orderID == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("orderId")
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order's business identifier.
func (q GetOrderQuery) OrderID() string {
	return q.orderID
}

// OrderItemResponse is one priced line of the order read model.
type OrderItemResponse struct {
	DishID      string
	Name        string
	PortionName string
	UnitPrice   float64
	Quantity    int
	TotalPrice  float64
}

// StatusEventResponse is one history entry of the order read model.
type StatusEventResponse struct {
	Status     string
	OccurredAt time.Time
	ActorID    string
	Notes      string
}

// DriverResponse describes the assigned driver, when there is one.
type DriverResponse struct {
	ID                    string
	Name                  string
	Phone                 string
	Vehicle               string
	AssignedAt            time.Time
	EstimatedDeliveryTime time.Time
}

// AddressResponse is the delivery destination of the read model.
type AddressResponse struct {
	Street     string
	City       string
	PostalCode string
	Lat        *float64
	Lng        *float64
}

// GetOrderQueryResponse is the full order read model.
type GetOrderQueryResponse struct {
	OrderID            string
	Status             string
	Fulfillment        string
	CustomerID         string
	CustomerName       string
	RestaurantID       string
	RestaurantName     string
	Items              []OrderItemResponse
	Subtotal           float64
	Tax                float64
	DeliveryFee        float64
	TotalAmount        float64
	PaymentStatus      string
	PaymentMethod      string
	Address            *AddressResponse
	History            []StatusEventResponse
	EstimatedReadyTime *time.Time
	ActualReadyTime    *time.Time
	Driver             *DriverResponse
	PlacedAt           time.Time
	Version            int64
}

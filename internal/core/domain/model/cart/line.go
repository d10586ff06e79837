package cart

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

// maxLineQuantity bounds a single line so a typo cannot produce an absurd order.
const maxLineQuantity = 100

// ErrLineIsNotConstructed is returned when a Line instance was not created
// through NewLine.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is a pending quantity of one dish, optionally with a portion, bound to
// one restaurant. The unit price is a snapshot taken when the line entered
// the cart.
type Line struct {
	id           kernel.UUID
	restaurantID string
	dishID       string
	dishName     string
	portionID    string
	portionName  string
	quantity     int
	unitPrice    float64
	createdAt    time.Time
	guard        guard.ConstructorGuard
}

// NewLine creates a validated cart line. Portion fields may be empty for
// dishes without portions. The creation time fixes the line's place in the
// cart's display order and must survive reloads.
func NewLine(
	id kernel.UUID,
	restaurantID, dishID, dishName, portionID, portionName string,
	quantity int,
	unitPrice float64,
	createdAt time.Time,
) (*Line, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if restaurantID == "" {
		return nil, errs.NewValueIsRequiredError("restaurantId")
	}
	if dishID == "" {
		return nil, errs.NewValueIsRequiredError("dishId")
	}
	if quantity < 1 || quantity > maxLineQuantity {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxLineQuantity)
	}
	if unitPrice < 0 {
		return nil, errs.NewValueIsInvalidError("unitPrice")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Line{
		id:           id,
		restaurantID: restaurantID,
		dishID:       dishID,
		dishName:     dishName,
		portionID:    portionID,
		portionName:  portionName,
		quantity:     quantity,
		unitPrice:    unitPrice,
		createdAt:    createdAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Line was created through NewLine.
func (l *Line) Validate() error {
	if l == nil || l.guard.Validate(nil) != nil {
		return ErrLineIsNotConstructed
	}
	return nil
}

// ID returns the line identifier.
func (l *Line) ID() kernel.UUID {
	return l.id
}

// RestaurantID returns the restaurant the dish belongs to.
func (l *Line) RestaurantID() string {
	return l.restaurantID
}

// DishID returns the catalog dish identifier.
func (l *Line) DishID() string {
	return l.dishID
}

// DishName returns the dish name snapshot taken at add time.
func (l *Line) DishName() string {
	return l.dishName
}

// PortionID returns the portion identifier, or "" for dishes without portions.
func (l *Line) PortionID() string {
	return l.portionID
}

// PortionName returns the human-readable portion name, or "".
func (l *Line) PortionName() string {
	return l.portionName
}

// Quantity returns the pending quantity (always ≥ 1).
func (l *Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the price snapshot taken when the line was added.
func (l *Line) UnitPrice() float64 {
	return l.unitPrice
}

// CreatedAt returns when the line first entered the cart.
func (l *Line) CreatedAt() time.Time {
	return l.createdAt
}

// TotalPrice returns quantity times the unit-price snapshot.
func (l *Line) TotalPrice() float64 {
	return float64(l.quantity) * l.unitPrice
}

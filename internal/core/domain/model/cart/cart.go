package cart

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	// ErrCartIsNotConstructed is returned when a Cart instance was not created
	// through NewCart or RestoreCart.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart constructor")

	// ErrCustomerIDIsRequired is returned when creating a cart without a customer.
	ErrCustomerIDIsRequired = errs.NewValueIsRequiredError("customerId")
)

// Cart is the aggregate holding a customer's pending line items before
// checkout. It enforces the single-restaurant invariant: every line in one
// cart belongs to the same restaurant, and adding a line from a different
// restaurant fails with a conflict unless the cart is empty.
//
// Lines carry a unit-price snapshot taken when the line was added; later
// catalog price changes do not retroactively affect the cart.
type Cart struct {
	customerID string
	lines      []*Line
	guard      guard.ConstructorGuard
}

// NewCart creates an empty cart for the given customer.
func NewCart(customerID string) (*Cart, error) {
	if customerID == "" {
		return nil, ErrCustomerIDIsRequired
	}

	return &Cart{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreCart reconstructs a cart and its lines from persistent storage.
// All restored lines must belong to a single restaurant; a mixed set of
// lines indicates corrupted state and is rejected.
func RestoreCart(customerID string, lines []*Line) (*Cart, error) {
	cart, err := NewCart(customerID)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		if err = line.Validate(); err != nil {
			return nil, err
		}
		if restaurantID := cart.RestaurantID(); restaurantID != "" && line.restaurantID != restaurantID {
			return nil, errs.NewConflictError(
				fmt.Sprintf("cart for customer %s holds lines from multiple restaurants", customerID))
		}
		cart.lines = append(cart.lines, line)
	}

	return cart, nil
}

// Validate ensures the Cart was created through a constructor.
func (c *Cart) Validate() error {
	if c == nil || c.guard.Validate(nil) != nil {
		return ErrCartIsNotConstructed
	}
	return nil
}

// CustomerID returns the owner of the cart.
func (c *Cart) CustomerID() string {
	return c.customerID
}

// RestaurantID returns the restaurant all lines belong to, or "" for an
// empty cart.
func (c *Cart) RestaurantID() string {
	if len(c.lines) == 0 {
		return ""
	}
	return c.lines[0].restaurantID
}

// Lines returns the current line items in insertion order.
func (c *Cart) Lines() []*Line {
	return c.lines
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Subtotal returns the sum of all line totals.
func (c *Cart) Subtotal() float64 {
	var subtotal float64
	for _, line := range c.lines {
		subtotal += line.TotalPrice()
	}
	return subtotal
}

// AddItem adds a dish to the cart, enforcing the single-restaurant invariant.
// A line with the same dish and portion is merged by incrementing its
// quantity, keeping the original price snapshot. Otherwise a new line is
// created with the supplied unit price as its snapshot.
//
// Returns the affected line.
func (c *Cart) AddItem(
	restaurantID, dishID, dishName, portionID, portionName string,
	quantity int,
	unitPrice float64,
) (*Line, error) {
	if restaurantID == "" {
		return nil, errs.NewValueIsRequiredError("restaurantId")
	}
	if dishID == "" {
		return nil, errs.NewValueIsRequiredError("dishId")
	}
	if quantity < 1 {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxLineQuantity)
	}
	if unitPrice < 0 {
		return nil, errs.NewValueIsInvalidError("unitPrice")
	}

	if existing := c.RestaurantID(); existing != "" && existing != restaurantID {
		return nil, errs.NewConflictError(
			fmt.Sprintf("cart already contains items from restaurant %s", existing))
	}

	for _, line := range c.lines {
		if line.dishID == dishID && line.portionID == portionID {
			merged := line.quantity + quantity
			if merged > maxLineQuantity {
				return nil, errs.NewValueIsOutOfRangeError("quantity", merged, 1, maxLineQuantity)
			}
			line.quantity = merged
			return line, nil
		}
	}

	line, err := NewLine(kernel.NewUUID(), restaurantID, dishID, dishName, portionID, portionName, quantity, unitPrice, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	c.lines = append(c.lines, line)
	return line, nil
}

// UpdateItem changes the quantity of an existing line. A quantity below 1
// removes the line entirely. Unknown lines fail with not-found.
func (c *Cart) UpdateItem(lineID kernel.UUID, quantity int) error {
	for i, line := range c.lines {
		if !line.id.IsEqual(lineID) {
			continue
		}

		if quantity < 1 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
		if quantity > maxLineQuantity {
			return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxLineQuantity)
		}

		line.quantity = quantity
		return nil
	}

	return errs.NewObjectNotFoundError("cartLineId", lineID.String())
}

// RemoveItem deletes a line from the cart.
func (c *Cart) RemoveItem(lineID kernel.UUID) error {
	return c.UpdateItem(lineID, 0)
}

// Reset removes all lines from the cart.
func (c *Cart) Reset() {
	c.lines = nil
}

package commands

import (
	"errors"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrAddCartItemCommandIsNotConstructed = errors.New(
	"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
)

// AddCartItemCommand represents a request to add a dish (optionally a
// specific portion) to the customer's cart.
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID   string
	restaurantID string
	dishID       string
	portionID    string
	quantity     int

	guard guard.ConstructorGuard
}

// NewAddCartItemCommand creates a command to add an item to a cart.
// PortionID may be empty when the dish is sold in a single size.
func NewAddCartItemCommand(
	customerID, restaurantID, dishID, portionID string,
	quantity int,
) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setDishID(dishID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	cmd.portionID = portionID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

// CustomerID returns the cart owner's identifier.
func (c AddCartItemCommand) CustomerID() string {
	return c.customerID
}

// RestaurantID returns the restaurant the dish belongs to.
func (c AddCartItemCommand) RestaurantID() string {
	return c.restaurantID
}

// DishID returns the dish to add.
func (c AddCartItemCommand) DishID() string {
	return c.dishID
}

// PortionID returns the chosen portion, or empty for the base dish.
func (c AddCartItemCommand) PortionID() string {
	return c.portionID
}

// Quantity returns how many units to add.
func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

func (c *AddCartItemCommand) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerId")
	}

	c.customerID = customerID
	return nil
}

func (c *AddCartItemCommand) setRestaurantID(restaurantID string) error {
	if restaurantID == "" {
		return errs.NewValueIsRequiredError("restaurantId")
	}

	c.restaurantID = restaurantID
	return nil
}

func (c *AddCartItemCommand) setDishID(dishID string) error {
	if dishID == "" {
		return errs.NewValueIsRequiredError("dishId")
	}

	c.dishID = dishID
	return nil
}

func (c *AddCartItemCommand) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, 100)
	}

	c.quantity = quantity
	return nil
}

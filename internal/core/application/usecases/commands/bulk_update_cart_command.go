package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrBulkUpdateCartCommandIsNotConstructed = errors.New(
	"BulkUpdateCartCommand must be created via NewBulkUpdateCartCommand constructor",
)

// LineUpdate is one quantity change inside a bulk cart update.
type LineUpdate struct {
	LineID   kernel.UUID
	Quantity int
}

// BulkUpdateCartCommand applies a set of quantity changes to one cart as a
// single all-or-nothing batch: one bad line aborts every change.
type BulkUpdateCartCommand struct { //nolint:recvcheck //using for validation
	customerID string
	updates    []LineUpdate

	guard guard.ConstructorGuard
}

// NewBulkUpdateCartCommand creates a command holding the whole batch.
func NewBulkUpdateCartCommand(customerID string, updates []LineUpdate) (BulkUpdateCartCommand, error) {
	if customerID == "" {
		return BulkUpdateCartCommand{}, errs.NewValueIsRequiredError("customerId")
	}
	if len(updates) == 0 {
		return BulkUpdateCartCommand{}, errs.NewValueIsRequiredError("updates")
	}
	for _, update := range updates {
		if err := update.LineID.Validate(); err != nil {
			return BulkUpdateCartCommand{}, err
		}
	}

	return BulkUpdateCartCommand{
		customerID: customerID,
		updates:    updates,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkUpdateCartCommand) Validate() error {
	return c.guard.Validate(ErrBulkUpdateCartCommandIsNotConstructed)
}

// CustomerID returns the cart owner's identifier.
func (c BulkUpdateCartCommand) CustomerID() string {
	return c.customerID
}

// Updates returns the batch of line changes.
func (c BulkUpdateCartCommand) Updates() []LineUpdate {
	return c.updates
}

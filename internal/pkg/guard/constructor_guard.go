// Package guard implements the constructor guard pattern used by domain
// value objects and commands to detect zero-value instances that bypassed
// their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error
// is supplied and the guarded object was not built via its constructor.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. Embedding a
// ConstructorGuard in a struct and setting it via NewConstructorGuard inside
// the constructor lets Validate distinguish real instances from zero values.
//
// Example:
//
//	type AddCartItemCommand struct {
//	    customerID string
//	    guard      guard.ConstructorGuard
//	}
//
//	func NewAddCartItemCommand(customerID string) (AddCartItemCommand, error) {
//	    // validate inputs...
//	    return AddCartItemCommand{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c AddCartItemCommand) Validate() error {
//	    return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking its holder as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for properly constructed objects. For zero values it
// returns validationError, or ErrDefaultConstructorGuard when validationError
// is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order segment.
// It implements a state machine with an explicit transition table so that
// only defined business transitions are possible.
//
// State transitions:
//
//	PLACED ──> PREPARING ──> READY_FOR_PICKUP ──┬──> OUT_FOR_DELIVERY ──> DELIVERED
//	   │            │                           │
//	   │            │                           └──> DELIVERED (pickup handoff)
//	   └────────────┴──> CANCELLED
//
// DELIVERED and CANCELLED are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status recorded at checkout.
	Placed

	// Preparing indicates the restaurant has started working on the order.
	Preparing

	// ReadyForPickup indicates the food is ready for the driver or customer.
	ReadyForPickup

	// OutForDelivery indicates the assigned driver is en route.
	OutForDelivery

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled is the alternate terminal state, reachable only before the
	// restaurant finishes preparing.
	Cancelled
)

// getStatusStrings returns a map of Status values to their wire representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Placed:         "PLACED",
		Preparing:      "PREPARING",
		ReadyForPickup: "READY_FOR_PICKUP",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
	}
}

// allowedTransitions is the authoritative transition table. A status absent
// from the map is terminal.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Placed:         {Preparing, Cancelled},
		Preparing:      {ReadyForPickup, Cancelled},
		ReadyForPickup: {OutForDelivery, Delivered},
		OutForDelivery: {Delivered},
	}
}

// StatusFromString parses a wire-format status such as "PREPARING".
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks the Status is one of the defined lifecycle states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format name of the status.
// Implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a single transition, returning the new
// status. Disallowed transitions fail with a conflict carrying both states.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewConflictError(
			fmt.Sprintf("cannot transition order from %s to %s", s, next))
	}
	return next, nil
}

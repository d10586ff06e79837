package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root created once at checkout and only mutated
// thereafter: status transitions, driver assignment, driver location, and
// payment fields. It is never deleted; cancellation is a status transition.
//
// Invariants:
//   - TotalAmount always equals segment subtotal + tax + deliveryFee
//   - Status history is append-only; exactly one event per transition
//   - Delivery orders carry a resolved address; pickup orders carry none
//   - The version field increases monotonically; writes are compare-and-swap
type Order struct {
	// id is the storage identity of the record
	id kernel.UUID

	// businessID is the date-based public identifier, e.g. ORD-20250101-0042
	businessID string

	// customer is the contact snapshot taken at checkout
	customer Customer

	// fulfillment distinguishes DELIVERY from PICKUP
	fulfillment Fulfillment

	// address is the resolved delivery destination; nil for pickup
	address *Address

	// segment is the single restaurant segment of the order
	segment *Segment

	// paymentStatus and paymentDetails track external settlement
	paymentStatus  PaymentStatus
	paymentDetails PaymentDetails

	// placedAt is when checkout created the order
	placedAt time.Time

	// version supports optimistic-lock writes at the persistence layer
	version int64

	guard guard.ConstructorGuard
}

// NewOrder creates an order at checkout time. The segment must already be in
// Placed status with its initial event recorded; delivery orders must carry
// an address.
func NewOrder(
	id kernel.UUID,
	businessID string,
	customer Customer,
	fulfillment Fulfillment,
	address *Address,
	segment *Segment,
	placedAt time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if businessID == "" {
		return nil, errs.NewValueIsRequiredError("businessId")
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if err := fulfillment.Validate(); err != nil {
		return nil, err
	}
	if segment == nil {
		return nil, errs.NewValueIsRequiredError("segment")
	}
	if fulfillment == Delivery {
		if address == nil {
			return nil, errs.NewValueIsRequiredError("deliveryAddress")
		}
		if err := address.Validate(); err != nil {
			return nil, err
		}
	}
	if placedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("placedAt")
	}

	return &Order{
		id:            id,
		businessID:    businessID,
		customer:      customer,
		fulfillment:   fulfillment,
		address:       address,
		segment:       segment,
		paymentStatus: PaymentPending,
		placedAt:      placedAt,
		version:       1,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstructs an order from persistence in its full state.
func RestoreOrder(
	id kernel.UUID,
	businessID string,
	customer Customer,
	fulfillment Fulfillment,
	address *Address,
	segment *Segment,
	paymentStatus PaymentStatus,
	paymentDetails PaymentDetails,
	placedAt time.Time,
	version int64,
) (*Order, error) {
	o, err := NewOrder(id, businessID, customer, fulfillment, address, segment, placedAt)
	if err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("order version")
	}
	o.paymentStatus = paymentStatus
	o.paymentDetails = paymentDetails
	o.version = version
	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || o.guard.Validate(nil) != nil {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by storage identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the storage identity.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BusinessID returns the public date-based identifier.
func (o *Order) BusinessID() string {
	return o.businessID
}

// Customer returns the checkout-time contact snapshot.
func (o *Order) Customer() Customer {
	return o.customer
}

// Fulfillment returns the fulfillment type.
func (o *Order) Fulfillment() Fulfillment {
	return o.fulfillment
}

// Address returns the delivery destination, nil for pickup orders.
func (o *Order) Address() *Address {
	return o.address
}

// Segment returns the order's restaurant segment.
func (o *Order) Segment() *Segment {
	return o.segment
}

// Status returns the segment's current lifecycle state.
func (o *Order) Status() Status {
	return o.segment.status
}

// TotalAmount returns segment subtotal + tax + deliveryFee.
func (o *Order) TotalAmount() float64 {
	return o.segment.Total()
}

// PaymentStatus returns the settlement state of the order amount.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// PaymentDetails returns the external settlement reference.
func (o *Order) PaymentDetails() PaymentDetails {
	return o.paymentDetails
}

// PlacedAt returns when checkout created the order.
func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

// Version returns the optimistic-lock version loaded from storage.
func (o *Order) Version() int64 {
	return o.version
}

// UpdateStatus advances the order to newStatus, appending exactly one status
// event. Transitions outside the state machine's table fail with a conflict
// and leave the order untouched.
//
// Side effects on entry:
//   - Preparing with estimatedReadyMinutes > 0 records the ready estimate
//   - ReadyForPickup records the actual ready time
func (o *Order) UpdateStatus(newStatus Status, actorID, notes string, now time.Time, estimatedReadyMinutes int) error {
	next, err := o.segment.status.TransitionTo(newStatus)
	if err != nil {
		return err
	}

	event, err := NewStatusEvent(next, now, actorID, notes)
	if err != nil {
		return err
	}

	o.segment.status = next
	o.segment.history = append(o.segment.history, event)

	switch next {
	case Preparing:
		if estimatedReadyMinutes > 0 {
			ready := now.Add(time.Duration(estimatedReadyMinutes) * time.Minute)
			o.segment.estimatedReady = &ready
		}
	case ReadyForPickup:
		o.segment.actualReady = &now
	}

	return nil
}

// Cancel transitions the order to Cancelled. Allowed only before the food is
// ready, per the transition table.
func (o *Order) Cancel(actorID, notes string, now time.Time) error {
	return o.UpdateStatus(Cancelled, actorID, notes, now, 0)
}

// AssignDriver attaches a driver to the segment. Allowed only while the
// restaurant is preparing or the food is waiting for pickup; any other
// status fails with a conflict.
//
// The estimated delivery time is the ready estimate plus a flat transit
// allowance; without a recorded estimate the allowance counts from now.
func (o *Order) AssignDriver(driver DriverInfo, now time.Time) error {
	if o.segment.status != Preparing && o.segment.status != ReadyForPickup {
		return errs.NewConflictError(
			fmt.Sprintf("cannot assign driver while order is %s", o.segment.status))
	}

	readyAt := now
	if o.segment.estimatedReady != nil {
		readyAt = *o.segment.estimatedReady
	}

	assignment, err := NewAssignment(driver, now, readyAt.Add(estimatedTransitMinutes*time.Minute))
	if err != nil {
		return err
	}

	o.segment.assignment = assignment
	return nil
}

// UpdateDriverLocation records a live position report. Only the assigned
// driver may report, and only while the order is out for delivery.
func (o *Order) UpdateDriverLocation(point kernel.GeoPoint, actorID string, now time.Time) error {
	if o.segment.assignment == nil {
		return errs.NewConflictError("order has no assigned driver")
	}
	if o.segment.assignment.driver.ID != actorID {
		return errs.NewPermissionDeniedError("actor is not the assigned driver")
	}
	if o.segment.status != OutForDelivery {
		return errs.NewConflictError(
			fmt.Sprintf("cannot report driver location while order is %s", o.segment.status))
	}

	return o.segment.assignment.recordLocation(point, now)
}

// RecordPayment updates the externally supplied settlement state.
func (o *Order) RecordPayment(status PaymentStatus, details PaymentDetails) error {
	if status == PaymentUnknown {
		return errs.NewValueIsInvalidError("paymentStatus")
	}
	o.paymentStatus = status
	o.paymentDetails = details
	return nil
}

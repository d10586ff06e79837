package order

import (
	"math"
	"time"

	"orderflow/internal/pkg/errs"
)

// moneyEpsilon absorbs float rounding when checking money invariants.
const moneyEpsilon = 1e-6

// Segment is the part of an order belonging to a single restaurant: the item
// snapshots taken at checkout, the money that prices them, the status with
// its append-only history, and the optional delivery assignment.
//
// The persisted schema supports multiple segments per order, but a single
// segment per order is the supported contract; checkout produces exactly one.
type Segment struct {
	restaurantID   string
	restaurantName string
	items          []Item
	subtotal       float64
	tax            float64
	deliveryFee    float64
	status         Status
	history        []StatusEvent
	estimatedReady *time.Time
	actualReady    *time.Time
	assignment     *Assignment
}

// NewSegment creates a segment in Placed status with the initial status
// event already recorded. Subtotal must equal the sum of item totals.
func NewSegment(
	restaurantID, restaurantName string,
	items []Item,
	subtotal, tax, deliveryFee float64,
	placedAt time.Time,
	actorID string,
) (*Segment, error) {
	if restaurantID == "" {
		return nil, errs.NewValueIsRequiredError("restaurantId")
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	var itemTotal float64
	for _, item := range items {
		itemTotal += item.Total()
	}
	if math.Abs(itemTotal-subtotal) > moneyEpsilon {
		return nil, errs.NewValueIsInvalidError("subtotal")
	}
	if tax < 0 || deliveryFee < 0 {
		return nil, errs.NewValueIsInvalidError("charges")
	}

	initial, err := NewStatusEvent(Placed, placedAt, actorID, "")
	if err != nil {
		return nil, err
	}

	return &Segment{
		restaurantID:   restaurantID,
		restaurantName: restaurantName,
		items:          items,
		subtotal:       subtotal,
		tax:            tax,
		deliveryFee:    deliveryFee,
		status:         Placed,
		history:        []StatusEvent{initial},
	}, nil
}

// RestoreSegment reconstructs a segment from persistence in its full state.
func RestoreSegment(
	restaurantID, restaurantName string,
	items []Item,
	subtotal, tax, deliveryFee float64,
	status Status,
	history []StatusEvent,
	estimatedReady, actualReady *time.Time,
	assignment *Assignment,
) (*Segment, error) {
	if restaurantID == "" {
		return nil, errs.NewValueIsRequiredError("restaurantId")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("statusHistory")
	}

	return &Segment{
		restaurantID:   restaurantID,
		restaurantName: restaurantName,
		items:          items,
		subtotal:       subtotal,
		tax:            tax,
		deliveryFee:    deliveryFee,
		status:         status,
		history:        history,
		estimatedReady: estimatedReady,
		actualReady:    actualReady,
		assignment:     assignment,
	}, nil
}

// RestaurantID returns the restaurant this segment belongs to.
func (s *Segment) RestaurantID() string {
	return s.restaurantID
}

// RestaurantName returns the restaurant name snapshot taken at checkout.
func (s *Segment) RestaurantName() string {
	return s.restaurantName
}

// Items returns the immutable item snapshots.
func (s *Segment) Items() []Item {
	return s.items
}

// Subtotal returns the sum of item totals.
func (s *Segment) Subtotal() float64 {
	return s.subtotal
}

// Tax returns the tax charged on the segment.
func (s *Segment) Tax() float64 {
	return s.tax
}

// DeliveryFee returns the delivery fee, zero for pickup segments.
func (s *Segment) DeliveryFee() float64 {
	return s.deliveryFee
}

// Total returns subtotal + tax + deliveryFee.
func (s *Segment) Total() float64 {
	return s.subtotal + s.tax + s.deliveryFee
}

// Status returns the segment's current lifecycle state.
func (s *Segment) Status() Status {
	return s.status
}

// History returns the append-only status history in insertion order.
func (s *Segment) History() []StatusEvent {
	return s.history
}

// EstimatedReadyTime returns the restaurant's ready estimate, if recorded.
func (s *Segment) EstimatedReadyTime() *time.Time {
	return s.estimatedReady
}

// ActualReadyTime returns when the food actually became ready, if recorded.
func (s *Segment) ActualReadyTime() *time.Time {
	return s.actualReady
}

// Assignment returns the delivery assignment, or nil before a driver is
// assigned.
func (s *Segment) Assignment() *Assignment {
	return s.assignment
}

// StatusTimestamps returns the most recent timestamp per status entered,
// used by tracking clients to render a progress timeline.
func (s *Segment) StatusTimestamps() map[Status]time.Time {
	timestamps := make(map[Status]time.Time, len(s.history))
	for _, event := range s.history {
		timestamps[event.Status()] = event.OccurredAt()
	}
	return timestamps
}

// Package order provides the Order aggregate root for the order-processing
// core: the record created once at checkout and mutated only through status
// transitions, driver assignment, driver location reports, and payment
// updates.
//
// The package includes:
//   - Order: The aggregate root with customer snapshot, fulfillment, and totals
//   - Segment: The single-restaurant part of an order with items and history
//   - Status: A state machine with an explicit transition table
//   - StatusEvent: Immutable, append-only transition records
//   - Assignment: The driver working a delivery and their live location
//
// Key business rules:
//   - totalAmount always equals subtotal + tax + deliveryFee
//   - Every transition appends exactly one StatusEvent; history is never reordered
//   - Drivers can be assigned only while PREPARING or READY_FOR_PICKUP
//   - Only the assigned driver may report a location, and only OUT_FOR_DELIVERY
//   - DELIVERED and CANCELLED are terminal
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order

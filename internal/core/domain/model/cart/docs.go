// Package cart provides the domain aggregate for a customer's pending order
// lines. It implements the pre-checkout shopping cart with the
// single-restaurant invariant.
//
// The package includes:
//   - Cart: The aggregate root keyed by customer, holding line items
//   - Line: One pending quantity of a dish with an add-time price snapshot
//
// Key business rules:
//   - All lines in one cart belong to the same restaurant
//   - Adding from a second restaurant fails unless the cart is empty
//   - Identical dish+portion lines merge by incrementing quantity
//   - Unit prices are snapshots; later catalog changes do not affect the cart
//   - Setting a line quantity below 1 removes the line
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package cart

// Package errs provides standardized error types for the order-processing core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the application's error taxonomy:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: validation failures
//   - ObjectNotFoundError: lookups that found nothing (order, cart line, restaurant, dish)
//   - ConflictError: operations invalid in the current state (cart mixing, bad transitions)
//   - PermissionDeniedError: actors not entitled to the operation
//   - CollaboratorFailureError: failed calls to external collaborators
//   - VersionConflictError: optimistic-lock write conflicts
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify against the sentinel
//
// Transport layers map the sentinels to HTTP status codes in one place,
// keeping classification out of business code.
package errs

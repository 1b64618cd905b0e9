// Package errs provides standardized error types for the production tracking application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The error types map onto the failure classes callers must tell apart:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation,
//     rejected before any transaction starts
//   - ObjectNotFoundError: an order, line, piece or station is absent
//   - ConflictError: the subject is not in the state the transition needs
//     (already delivered, already resolved, not enough ready pieces)
//   - PreconditionFailedError: the system is not configured for the operation
//     (no active stations)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies any instance
package errs

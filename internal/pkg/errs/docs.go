// Package errs provides standardized error types for the order board.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package covers two groups of errors:
//   - Validation errors raised while constructing domain objects and
//     commands: ValueIsRequiredError, ValueIsInvalidError, ObjectNotFoundError
//   - Board errors raised while moving orders between lanes:
//     IllegalTransitionError, StaleOrderError, VersionConflictError,
//     TransitionPendingError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrIllegalTransition)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// IllegalTransitionError and StaleOrderError are resolved locally by snapping
// the dragged card back. VersionConflictError and exhausted network retries
// are surfaced as notifications and heal through a re-fetch of the affected
// order. No error in this taxonomy is fatal to a board session.
package errs

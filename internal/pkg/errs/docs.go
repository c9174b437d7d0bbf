// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the failure kinds callers need to tell apart:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: validation failures
//   - ObjectNotFoundError: a referenced order or courier does not exist
//   - PreconditionFailedError: the object's current state forbids the operation
//   - UpstreamUnavailableError: a collaborator call failed; retryable
//   - VersionConflictError: the record changed since it was read; the write lost a race
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrVersionConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach to error handling improves error reporting,
// makes error handling more consistent, and enables better error classification
// and handling throughout the application.
package errs

package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the board's error taxonomy. Callers classify failures
// with errors.Is against these rather than matching concrete types.
var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrObjectNotFound    = errors.New("object not found")
	ErrIllegalTransition = errors.New("illegal transition")
	ErrStaleOrder        = errors.New("stale order")
	ErrVersionConflict   = errors.New("version conflict")
	ErrTransitionPending = errors.New("transition pending")
)

// sanitize collapses newlines so error messages stay single-line in logs.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// ValueIsRequiredError indicates a required value was missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the named parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping a cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the named parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping a cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError indicates a lookup by identifier found nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the named parameter and ID.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping a cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// IllegalTransitionError indicates a requested status edge is not part of the
// order lifecycle. Resolved locally by rejecting the drag; never sent to the
// backend.
type IllegalTransitionError struct {
	From  string
	To    string
	Cause error
}

// NewIllegalTransitionError creates an IllegalTransitionError for the requested edge.
func NewIllegalTransitionError(from, to string) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to}
}

// NewIllegalTransitionErrorWithCause creates an IllegalTransitionError wrapping a cause.
func NewIllegalTransitionErrorWithCause(from, to string, cause error) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to, Cause: cause}
}

func (e *IllegalTransitionError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s -> %s (cause: %s)", ErrIllegalTransition, e.From, e.To, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition, e.From, e.To))
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// StaleOrderError indicates the referenced order is no longer present on the
// board, typically because another actor cancelled or served it already.
type StaleOrderError struct {
	OrderID string
	Cause   error
}

// NewStaleOrderError creates a StaleOrderError for the given order ID.
func NewStaleOrderError(orderID string) *StaleOrderError {
	return &StaleOrderError{OrderID: orderID}
}

// NewStaleOrderErrorWithCause creates a StaleOrderError wrapping a cause.
func NewStaleOrderErrorWithCause(orderID string, cause error) *StaleOrderError {
	return &StaleOrderError{OrderID: orderID, Cause: cause}
}

func (e *StaleOrderError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrStaleOrder, e.OrderID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrStaleOrder, e.OrderID))
}

func (e *StaleOrderError) Unwrap() error {
	return ErrStaleOrder
}

// VersionConflictError indicates the caller acted on an outdated view of an
// order: someone else already transitioned it and the version moved on.
type VersionConflictError struct {
	OrderID         string
	ExpectedVersion int64
	ActualVersion   int64
	Cause           error
}

// NewVersionConflictError creates a VersionConflictError for the given order and versions.
func NewVersionConflictError(orderID string, expected, actual int64) *VersionConflictError {
	return &VersionConflictError{OrderID: orderID, ExpectedVersion: expected, ActualVersion: actual}
}

// NewVersionConflictErrorWithCause creates a VersionConflictError wrapping a cause.
func NewVersionConflictErrorWithCause(orderID string, expected, actual int64, cause error) *VersionConflictError {
	return &VersionConflictError{OrderID: orderID, ExpectedVersion: expected, ActualVersion: actual, Cause: cause}
}

func (e *VersionConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: order %s expected version %d, actual %d (cause: %s)",
			ErrVersionConflict, e.OrderID, e.ExpectedVersion, e.ActualVersion, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: order %s expected version %d, actual %d",
		ErrVersionConflict, e.OrderID, e.ExpectedVersion, e.ActualVersion))
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}

// TransitionPendingError indicates the order already has a transition in
// flight from this client. A second transition is rejected until the first is
// acknowledged or rolled back.
type TransitionPendingError struct {
	OrderID string
	Cause   error
}

// NewTransitionPendingError creates a TransitionPendingError for the given order ID.
func NewTransitionPendingError(orderID string) *TransitionPendingError {
	return &TransitionPendingError{OrderID: orderID}
}

// NewTransitionPendingErrorWithCause creates a TransitionPendingError wrapping a cause.
func NewTransitionPendingErrorWithCause(orderID string, cause error) *TransitionPendingError {
	return &TransitionPendingError{OrderID: orderID, Cause: cause}
}

func (e *TransitionPendingError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrTransitionPending, e.OrderID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrTransitionPending, e.OrderID))
}

func (e *TransitionPendingError) Unwrap() error {
	return ErrTransitionPending
}

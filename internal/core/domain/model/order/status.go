package order

import (
	"fmt"

	"orderboard/internal/pkg/errs"
)

// Status represents the lifecycle state of an order on the board.
// It implements a state machine with defined transitions to ensure orders
// follow the correct service workflow.
//
// State transitions:
//
//	New ──> Preparing ──> Ready ──> Served
//	 │          │           │
//	 └──────────┴───────────┴─────> Cancelled
//
// Served and Cancelled are terminal. No other edges are legal; in particular
// an order can never skip forward (e.g. New -> Served) or move backwards.
//
// Status is a value object that validates state transitions and provides
// string representations matching the Orders API wire format.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status assigned by the backend when a customer
	// places an order. Cards in this status wait in the first lane.
	New

	// Preparing indicates kitchen staff have started working on the order.
	Preparing

	// Ready indicates the order is prepared and waiting to be picked up.
	Ready

	// Served indicates the order has been delivered to the table.
	// This is a terminal state.
	Served

	// Cancelled indicates the order was withdrawn before being served.
	// Reachable from any non-terminal state; terminal itself.
	Cancelled
)

// getStatusStrings returns a map of Status values to their wire-format
// string representations. All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		New:       "new",
		Preparing: "preparing",
		Ready:     "ready",
		Served:    "served",
		Cancelled: "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:       "new",
		Preparing: "preparing",
		Ready:     "ready",
		Served:    "served",
		Cancelled: "cancelled",
	}
}

// getSuccessors returns the complete legal edge set of the state machine.
func getSuccessors() map[Status][]Status {
	return map[Status][]Status{
		New:       {Preparing, Cancelled},
		Preparing: {Ready, Cancelled},
		Ready:     {Served, Cancelled},
		Served:    {},
		Cancelled: {},
	}
}

// ParseStatus converts a wire-format string into a Status.
// Returns an error for anything that is not one of the five valid statuses.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: New, Preparing, Ready, Served, Cancelled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire-format name of the status.
// Returns "unknown" for invalid status values. Implements fmt.Stringer and is
// safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Served || s == Cancelled
}

// CanTransitionTo reports whether target is a legal successor of s without
// performing the transition. The drag controller uses this for fast-fail
// validation before any state is touched.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getSuccessors()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Successors returns the legal successor statuses of s.
// The result is a fresh slice each call; callers may modify it freely.
func (s Status) Successors() []Status {
	successors := getSuccessors()[s]
	out := make([]Status, len(successors))
	copy(out, successors)
	return out
}

// TransitionTo validates the edge from s to target and returns the new
// status.
//
// Returns:
//   - (target, nil) when the edge is part of the lifecycle
//   - (Unknown, *errs.IllegalTransitionError) otherwise
//
// This method is used by Order.TransitionTo to enforce state transitions.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewIllegalTransitionError(s.String(), target.String())
	}
	return target, nil
}

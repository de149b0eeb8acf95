package order

import (
	"fmt"

	"gharkakhana/internal/pkg/errs"
)

// ErrInvalidTransition indicates that the requested status change is not an
// edge of the order lifecycle.
var ErrInvalidTransition = fmt.Errorf("invalid status transition")

// Status represents the lifecycle state of a placed order.
// It implements a state machine with defined transitions so orders follow
// the fulfillment workflow and cannot move backwards or skip states.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> Ready ──> Completed
//	   │            │             │
//	   └────────────┴─────────────┴──> Cancelled
//
// The cancellation window closes once preparation is done: Ready orders can
// no longer be cancelled. Completed and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly placed order,
	// awaiting the chef's confirmation.
	Pending

	// Confirmed indicates the chef has accepted the order.
	Confirmed

	// Preparing indicates the chef is cooking the order.
	Preparing

	// Ready indicates the order is ready for pickup.
	// Cancellation is no longer possible from this point.
	Ready

	// Completed indicates the order was picked up. Terminal.
	Completed

	// Cancelled indicates the order was cancelled before preparation
	// finished and its inventory reservations were released. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Confirmed: "Confirmed",
		Preparing: "Preparing",
		Ready:     "Ready",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Confirmed: "Confirmed",
		Preparing: "Preparing",
		Ready:     "Ready",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// legalTransitions is the complete edge set of the order lifecycle.
// Anything not listed here is an invalid transition.
func legalTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Confirmed, Cancelled},
		Confirmed: {Preparing, Cancelled},
		Preparing: {Ready, Cancelled},
		Ready:     {Completed},
	}
}

// Validate checks if the Status value is a defined lifecycle state.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status name, e.g. from an HTTP request or a
// database row. The comparison is exact and case-sensitive.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether moving from s to next is a legal edge.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range legalTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a status transition.
//
// Returns:
//   - (next, nil) when the edge is legal
//   - (0, error wrapping ErrInvalidTransition) otherwise
//
// The error message names both endpoints so callers can report exactly
// which transition was rejected.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(next) {
		return 0, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}
	return next, nil
}

package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Accepted ──> Preparing ──> Ready ──> OnTheWay ──> Delivered
//	   │            │
//	   ├──> Cancelled (customer/system, early states only)
//	   └──> Rejected  (restaurant, early states only)
//
// Delivered, Cancelled, and Rejected are terminal: no further transitions exist.
//
// Status is a value object that validates state transitions and provides
// wire-format string representations for persistence and the HTTP surface.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first placed.
	Pending

	// Confirmed indicates the order passed initial checks and reached the restaurant.
	Confirmed

	// Accepted indicates the restaurant accepted the order and committed to a prep time.
	Accepted

	// Preparing indicates the kitchen started working on the order.
	Preparing

	// Ready indicates the order awaits a courier. Orders in this status are
	// the candidate pool of the dispatch matcher.
	Ready

	// OnTheWay indicates a courier was assigned and is delivering the order.
	// An order enters this status only together with a courier assignment.
	OnTheWay

	// Delivered indicates the courier handed the order over. Terminal.
	Delivered

	// Cancelled indicates the customer or the system withdrew the order
	// before the restaurant accepted it. Terminal.
	Cancelled

	// Rejected indicates the restaurant declined the order. Terminal.
	Rejected
)

// getStatusStrings returns a map of Status values to their wire representations.
// The strings match the external contract of the order ledger.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Confirmed: "confirmed",
		Accepted:  "accepted",
		Preparing: "preparing",
		Ready:     "ready",
		OnTheWay:  "onTheWay",
		Delivered: "delivered",
		Cancelled: "cancelled",
		Rejected:  "rejected",
	}
}

// getTransitions returns the legal-transition graph.
// The original ledger applied status writes unconditionally; enforcing the graph
// here is a deliberate tightening so an order can never skip a required step or
// leave a terminal state.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Confirmed, Cancelled, Rejected},
		Confirmed: {Accepted, Cancelled, Rejected},
		Accepted:  {Preparing},
		Preparing: {Ready},
		Ready:     {OnTheWay},
		OnTheWay:  {Delivered},
		Delivered: {},
		Cancelled: {},
		Rejected:  {},
	}
}

// StatusFromString parses a wire-format status string.
// Returns a ValueIsInvalidError for unrecognized input.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"orderStatus",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is a defined lifecycle state.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire-format name of the status.
// Returns "unknown" for invalid status values.
// This method implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is defined from this status.
func (s Status) IsTerminal() bool {
	targets, ok := getTransitions()[s]
	return ok && len(targets) == 0
}

// CanTransitionTo reports whether the transition graph allows moving
// from this status to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range getTransitions()[s] {
		if t == target {
			return true
		}
	}
	return false
}

// TransitionTo moves the state machine to target.
//
// Returns:
//   - (target, nil) when the transition graph defines the edge
//   - (0, error) otherwise, with the offending pair in the cause
//
// All aggregate-level operations (Confirm, Accept, Deliver, ...) funnel
// through this method so the graph is enforced in exactly one place.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(target) {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("cannot transition from %s to %s", s.String(), target.String()),
		)
	}

	return target, nil
}

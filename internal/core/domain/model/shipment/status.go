package shipment

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
//
// State transitions:
//
//	Pending ──> PickedUp ──> InTransit <──> AtSortingCenter
//	   │           │             │               │
//	   v           v             └──> OutForDelivery <──┐
//	Cancelled <────┴───────────┐          │             │
//	                           │          ├──> Delivered│
//	                           │          v             │
//	                           └──── FailedDelivery ────┘
//	                                      │
//	                                      └──> Returned
//
// Delivered, Returned and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a newly registered shipment.
	Pending

	// PickedUp indicates the parcel was collected from the sender.
	PickedUp

	// InTransit indicates the parcel is moving between hubs or is bound to a tour.
	InTransit

	// AtSortingCenter indicates the parcel is being processed at a hub.
	AtSortingCenter

	// OutForDelivery indicates the parcel is on the last leg to the recipient.
	OutForDelivery

	// Delivered is terminal.
	Delivered

	// FailedDelivery indicates a delivery attempt did not succeed.
	FailedDelivery

	// Returned is terminal.
	Returned

	// Cancelled is terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "unknown",
		Pending:         "pending",
		PickedUp:        "picked_up",
		InTransit:       "in_transit",
		AtSortingCenter: "at_sorting_center",
		OutForDelivery:  "out_for_delivery",
		Delivered:       "delivered",
		FailedDelivery:  "failed_delivery",
		Returned:        "returned",
		Cancelled:       "cancelled",
	}
}

// getTransitions is the only source of legal edges. Terminal statuses map to an empty set.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // Unknown has no edges
	return map[Status][]Status{
		Pending:         {PickedUp, Cancelled},
		PickedUp:        {InTransit, Cancelled},
		InTransit:       {AtSortingCenter, OutForDelivery},
		AtSortingCenter: {InTransit, OutForDelivery},
		OutForDelivery:  {Delivered, FailedDelivery},
		FailedDelivery:  {OutForDelivery, Returned, Cancelled},
		Delivered:       {},
		Returned:        {},
		Cancelled:       {},
	}
}

// Validate checks if the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid shipment status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "out_for_delivery".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ParseStatus resolves a wire name back to a Status.
func ParseStatus(value string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid shipment status", value),
	)
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Returned || s == Cancelled
}

// AllowedTransitions returns the statuses reachable from s in one manual step.
// UIs use this set instead of hardcoding the edge table.
func (s Status) AllowedTransitions() []Status {
	next := getTransitions()[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo returns a validation error when next is not an outgoing edge of s.
func (s Status) CanTransitionTo(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("illegal transition from %s to %s", s, next),
	)
}

// IsEligibleForTour reports whether a shipment in this status may be bound to a new tour.
func (s Status) IsEligibleForTour() bool {
	for _, eligible := range TourEligibleStatuses() {
		if s == eligible {
			return true
		}
	}
	return false
}

// TourEligibleStatuses lists the statuses accepted by tour dispatch.
func TourEligibleStatuses() []Status {
	return []Status{Pending, PickedUp, InTransit}
}

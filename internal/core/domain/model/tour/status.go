package tour

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery tour.
//
// State transitions:
//
//	Planned ──> InProgress ──> Completed
//	   │  └────────────────────────^
//	   └──> Cancelled
//
// Completing a planned tour starts it implicitly.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Planned tours hold their driver and vehicle and may still be edited.
	Planned

	// InProgress tours are dispatched; membership is frozen and deletion is refused.
	InProgress

	// Completed is terminal.
	Completed

	// Cancelled is terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Planned:    "planned",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid tour status", s))
	}
	return nil
}

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
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid tour status", value))
}

// IsTerminal reports whether the tour is completed or cancelled.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// HoldsResources reports whether a tour in this status keeps its driver and vehicle allocated.
func (s Status) HoldsResources() bool {
	return s == Planned || s == InProgress
}

// Start transitions Planned -> InProgress.
func (s Status) Start() (Status, error) {
	if s != Planned {
		return Unknown, errs.NewConflictError("tour", "is "+s.String()+", not planned")
	}
	return InProgress, nil
}

// Complete transitions Planned or InProgress -> Completed.
func (s Status) Complete() (Status, error) {
	switch s {
	case Planned, InProgress:
		return Completed, nil
	case Completed:
		return Unknown, errs.NewConflictError("tour", "is already completed")
	case Cancelled:
		return Unknown, errs.NewConflictError("tour", "is cancelled")
	case Unknown:
		return Unknown, s.Validate()
	default:
		return Unknown, s.Validate()
	}
}

// Cancel transitions Planned -> Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Planned {
		return Unknown, errs.NewConflictError("tour", "is "+s.String()+", only planned tours can be cancelled")
	}
	return Cancelled, nil
}

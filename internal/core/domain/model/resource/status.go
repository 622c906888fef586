package resource

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the availability of a driver or vehicle.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Available resources can be allocated to a new tour.
	Available

	// Allocated resources are bound to exactly one planned or in-progress tour.
	Allocated

	// Resting resources are temporarily unavailable (driver off duty, vehicle in maintenance).
	Resting

	// OutOfService resources are unavailable until explicitly returned to service.
	OutOfService
)

func getLabels(k Kind) map[Status]string {
	if k == Vehicle {
		return map[Status]string{
			Available:    "available",
			Allocated:    "in_use",
			Resting:      "maintenance",
			OutOfService: "out_of_service",
		}
	}
	return map[Status]string{
		Available:    "available",
		Allocated:    "on_tour",
		Resting:      "off_duty",
		OutOfService: "out_of_service",
	}
}

// Label returns the kind-specific wire name of the status, e.g. "on_tour" or "in_use".
func (s Status) Label(k Kind) string {
	if label, ok := getLabels(k)[s]; ok {
		return label
	}
	return "unknown"
}

// String returns the driver label; use Label for vehicles.
func (s Status) String() string {
	return s.Label(Driver)
}

// ParseStatus resolves a kind-specific label back to a Status.
func ParseStatus(k Kind, label string) (Status, error) {
	for status, l := range getLabels(k) {
		if l == label {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid %s status", label, k),
	)
}

func (s Status) Validate() error {
	if s < Available || s > OutOfService {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Allocate transitions Available -> Allocated.
func (s Status) Allocate(k Kind) (Status, error) {
	if s != Available {
		return Unknown, errs.NewConflictError(k.String(), fmt.Sprintf("is %s, not available", s.Label(k)))
	}
	return Allocated, nil
}

// ChangeAvailability moves between the statuses an operator may set by hand.
// Allocated can neither be left nor entered this way.
func (s Status) ChangeAvailability(k Kind, target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if target == Allocated {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is set by tour dispatch only", target.Label(k)),
		)
	}
	if s == Allocated {
		return Unknown, errs.NewConflictError(k.String(), "is bound to an active tour")
	}
	return target, nil
}

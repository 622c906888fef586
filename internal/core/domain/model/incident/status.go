package incident

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status tracks how far an incident has been handled.
//
//	Reported ──> UnderInvestigation ──> Resolved ──> Closed
//	   └────────────────────────────────^
type Status int

const (
	UnknownStatus Status = iota
	Reported
	UnderInvestigation
	Resolved
	Closed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus:      "unknown",
		Reported:           "reported",
		UnderInvestigation: "under_investigation",
		Resolved:           "resolved",
		Closed:             "closed",
	}
}

func getTransitions() map[Status][]Status {
	//nolint:exhaustive // UnknownStatus has no edges
	return map[Status][]Status{
		Reported:           {UnderInvestigation, Resolved},
		UnderInvestigation: {Resolved},
		Resolved:           {Closed},
		Closed:             {},
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) Validate() error {
	if s <= UnknownStatus || s > Closed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid incident status", s))
	}
	return nil
}

func ParseStatus(value string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != UnknownStatus && str == value {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid incident status", value))
}

// CanTransitionTo returns a validation error for an edge that does not exist.
func (s Status) CanTransitionTo(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("illegal transition from %s to %s", s, next))
}

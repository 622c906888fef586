package incident

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Type classifies an operational incident.
type Type int

const (
	UnknownType Type = iota
	Delay
	Damage
	Loss
	Accident
	VehicleBreakdown
	CustomerUnavailable
	AddressIssue
	Other
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		UnknownType:         "unknown",
		Delay:               "delay",
		Damage:              "damage",
		Loss:                "loss",
		Accident:            "accident",
		VehicleBreakdown:    "vehicle_breakdown",
		CustomerUnavailable: "customer_unavailable",
		AddressIssue:        "address_issue",
		Other:               "other",
	}
}

func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

func (t Type) Validate() error {
	if t <= UnknownType || t > Other {
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%d is not a valid incident type", t))
	}
	return nil
}

func ParseType(value string) (Type, error) {
	for typ, str := range getTypeStrings() {
		if typ != UnknownType && str == value {
			return typ, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a valid incident type", value))
}

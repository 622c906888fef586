package resource

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Kind identifies the type of an allocatable resource.
type Kind int

const (
	UnknownKind Kind = iota
	Driver
	Vehicle
)

func (k Kind) String() string {
	switch k {
	case Driver:
		return "driver"
	case Vehicle:
		return "vehicle"
	case UnknownKind:
		return "unknown"
	default:
		return "unknown"
	}
}

func (k Kind) Validate() error {
	if k != Driver && k != Vehicle {
		return errs.NewValueIsInvalidErrorWithCause("resource kind", fmt.Errorf("%d is not a valid kind", k))
	}
	return nil
}

package resource

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Availability is the allocation state embedded in the Driver and Vehicle aggregates:
// the availability status plus the independent soft-disable flag.
type Availability struct {
	kind     Kind
	status   Status
	isActive bool
}

// NewAvailability returns an active, available state for a new resource.
func NewAvailability(kind Kind) Availability {
	return Availability{kind: kind, status: Available, isActive: true}
}

// RestoreAvailability rebuilds a persisted state.
func RestoreAvailability(kind Kind, status Status, isActive bool) (Availability, error) {
	if err := kind.Validate(); err != nil {
		return Availability{}, err
	}
	if err := status.Validate(); err != nil {
		return Availability{}, err
	}
	return Availability{kind: kind, status: status, isActive: isActive}, nil
}

func (a Availability) Kind() Kind        { return a.kind }
func (a Availability) Status() Status    { return a.status }
func (a Availability) IsActive() bool    { return a.isActive }
func (a Availability) IsAllocated() bool { return a.status == Allocated }

// CanBeAllocated reports why the resource cannot join a tour, or nil.
func (a Availability) CanBeAllocated() error {
	if !a.isActive {
		return errs.NewConflictError(a.kind.String(), "is not active")
	}
	if _, err := a.status.Allocate(a.kind); err != nil {
		return err
	}
	return nil
}

// Allocate marks the resource as bound to a tour.
func (a *Availability) Allocate() error {
	if err := a.CanBeAllocated(); err != nil {
		return err
	}
	a.status = Allocated
	return nil
}

// Release returns the resource to Available. Releasing an unallocated resource is a no-op.
func (a *Availability) Release() {
	if a.status == Allocated {
		a.status = Available
	}
}

// SetStatus applies an operator-driven availability change.
func (a *Availability) SetStatus(target Status) error {
	next, err := a.status.ChangeAvailability(a.kind, target)
	if err != nil {
		return err
	}
	a.status = next
	return nil
}

// SetActive toggles the soft-disable flag; a resource bound to a tour cannot be deactivated.
func (a *Availability) SetActive(active bool) error {
	if !active && a.status == Allocated {
		return errs.NewConflictError(a.kind.String(), fmt.Sprintf("is %s and cannot be deactivated", a.status.Label(a.kind)))
	}
	a.isActive = active
	return nil
}

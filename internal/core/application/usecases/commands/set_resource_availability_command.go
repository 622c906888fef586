package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrSetResourceAvailabilityCommandIsNotConstructed = errors.New(
	"SetResourceAvailabilityCommand must be created via NewSetResourceAvailabilityCommand constructor",
)

// SetResourceAvailabilityCommand is an operator change such as sending a vehicle to
// maintenance or a driver off duty. The allocated status is reserved for dispatch.
type SetResourceAvailabilityCommand struct {
	kind       resource.Kind
	resourceID kernel.UUID
	status     resource.Status
	guard      guard.ConstructorGuard
}

func NewSetResourceAvailabilityCommand(
	kind resource.Kind,
	resourceID kernel.UUID,
	status resource.Status,
) (SetResourceAvailabilityCommand, error) {
	if err := errors.Join(kind.Validate(), resourceID.Validate(), status.Validate()); err != nil {
		return SetResourceAvailabilityCommand{}, err
	}
	if status == resource.Allocated {
		return SetResourceAvailabilityCommand{}, errs.NewValueIsInvalidError("status " + status.Label(kind))
	}

	return SetResourceAvailabilityCommand{
		kind:       kind,
		resourceID: resourceID,
		status:     status,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c SetResourceAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetResourceAvailabilityCommandIsNotConstructed)
}

func (c SetResourceAvailabilityCommand) Kind() resource.Kind     { return c.kind }
func (c SetResourceAvailabilityCommand) ResourceID() kernel.UUID { return c.resourceID }
func (c SetResourceAvailabilityCommand) Status() resource.Status { return c.status }

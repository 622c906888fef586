package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"
	"dispatch/internal/pkg/guard"
)

var ErrSetResourceActiveCommandIsNotConstructed = errors.New(
	"SetResourceActiveCommand must be created via NewSetResourceActiveCommand constructor",
)

// SetResourceActiveCommand toggles the soft-disable flag of a driver or vehicle.
type SetResourceActiveCommand struct {
	kind       resource.Kind
	resourceID kernel.UUID
	active     bool
	guard      guard.ConstructorGuard
}

func NewSetResourceActiveCommand(kind resource.Kind, resourceID kernel.UUID, active bool) (SetResourceActiveCommand, error) {
	if err := errors.Join(kind.Validate(), resourceID.Validate()); err != nil {
		return SetResourceActiveCommand{}, err
	}
	return SetResourceActiveCommand{kind: kind, resourceID: resourceID, active: active, guard: guard.NewConstructorGuard()}, nil
}

func (c SetResourceActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetResourceActiveCommandIsNotConstructed)
}

func (c SetResourceActiveCommand) Kind() resource.Kind     { return c.kind }
func (c SetResourceActiveCommand) ResourceID() kernel.UUID { return c.resourceID }
func (c SetResourceActiveCommand) Active() bool            { return c.active }

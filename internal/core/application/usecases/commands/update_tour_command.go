package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tour"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateTourCommandIsNotConstructed = errors.New(
	"UpdateTourCommand must be created via NewUpdateTourCommand constructor",
)

// UpdateTourCommand patches a planned tour. Nil fields are left unchanged; a non-nil
// ShipmentIDs replaces the membership.
type UpdateTourCommand struct {
	tourID kernel.UUID
	patch  tour.Patch
	actor  string

	guard guard.ConstructorGuard
}

func NewUpdateTourCommand(tourID kernel.UUID, patch tour.Patch, actor string) (UpdateTourCommand, error) {
	if err := tourID.Validate(); err != nil {
		return UpdateTourCommand{}, err
	}
	if patch.Date == nil && patch.PlannedRoute == nil && patch.Notes == nil && patch.ShipmentIDs == nil {
		return UpdateTourCommand{}, errs.NewValueIsRequiredError("patch")
	}
	if patch.PlannedRoute != nil {
		if err := patch.PlannedRoute.Validate(); err != nil {
			return UpdateTourCommand{}, err
		}
	}
	if patch.Date != nil && patch.Date.Equal(time.Time{}) {
		return UpdateTourCommand{}, tour.ErrDateIsRequired
	}

	return UpdateTourCommand{
		tourID: tourID,
		patch:  patch,
		actor:  actor,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateTourCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTourCommandIsNotConstructed)
}

func (c UpdateTourCommand) TourID() kernel.UUID { return c.tourID }
func (c UpdateTourCommand) Patch() tour.Patch   { return c.patch }
func (c UpdateTourCommand) Actor() string       { return c.actor }

package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrStartTourCommandIsNotConstructed = errors.New(
	"StartTourCommand must be created via NewStartTourCommand constructor",
)

// StartTourCommand dispatches a planned tour.
type StartTourCommand struct {
	tourID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewStartTourCommand(tourID kernel.UUID) (StartTourCommand, error) {
	if err := tourID.Validate(); err != nil {
		return StartTourCommand{}, err
	}
	return StartTourCommand{tourID: tourID, guard: guard.NewConstructorGuard()}, nil
}

func (c StartTourCommand) Validate() error {
	return c.guard.Validate(ErrStartTourCommandIsNotConstructed)
}

func (c StartTourCommand) TourID() kernel.UUID {
	return c.tourID
}

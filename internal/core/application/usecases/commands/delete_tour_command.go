package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrDeleteTourCommandIsNotConstructed = errors.New(
	"DeleteTourCommand must be created via NewDeleteTourCommand constructor",
)

type DeleteTourCommand struct {
	tourID kernel.UUID
	actor  string
	guard  guard.ConstructorGuard
}

func NewDeleteTourCommand(tourID kernel.UUID, actor string) (DeleteTourCommand, error) {
	if err := tourID.Validate(); err != nil {
		return DeleteTourCommand{}, err
	}
	return DeleteTourCommand{tourID: tourID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteTourCommand) Validate() error {
	return c.guard.Validate(ErrDeleteTourCommandIsNotConstructed)
}

func (c DeleteTourCommand) TourID() kernel.UUID { return c.tourID }
func (c DeleteTourCommand) Actor() string       { return c.actor }

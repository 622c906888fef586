package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCancelTourCommandIsNotConstructed = errors.New(
	"CancelTourCommand must be created via NewCancelTourCommand constructor",
)

// CancelTourCommand abandons a planned tour.
type CancelTourCommand struct {
	tourID kernel.UUID
	reason string
	actor  string
	guard  guard.ConstructorGuard
}

func NewCancelTourCommand(tourID kernel.UUID, reason string, actor string) (CancelTourCommand, error) {
	if err := tourID.Validate(); err != nil {
		return CancelTourCommand{}, err
	}
	return CancelTourCommand{tourID: tourID, reason: reason, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelTourCommand) Validate() error {
	return c.guard.Validate(ErrCancelTourCommandIsNotConstructed)
}

func (c CancelTourCommand) TourID() kernel.UUID { return c.tourID }
func (c CancelTourCommand) Reason() string      { return c.reason }
func (c CancelTourCommand) Actor() string       { return c.actor }

package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tour"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCompleteTourCommandIsNotConstructed = errors.New(
	"CompleteTourCommand must be created via NewCompleteTourCommand constructor",
)

// CompleteTourCommand carries the driver's report for a finished tour.
//
// Example:
//
//	distance, _ := kernel.DistanceFromFloat(40)
//	route, _ := tour.NewActualRoute(nil, nil, distance)
//	cmd, err := NewCompleteTourCommand(tourID, route, 1, 1, nil, actor)
type CompleteTourCommand struct {
	tourID              kernel.UUID
	actualRoute         tour.ActualRoute
	deliveriesCompleted int
	deliveriesFailed    int
	notes               *string
	actor               string

	guard guard.ConstructorGuard
}

func NewCompleteTourCommand(
	tourID kernel.UUID,
	actualRoute tour.ActualRoute,
	deliveriesCompleted int,
	deliveriesFailed int,
	notes *string,
	actor string,
) (CompleteTourCommand, error) {
	var errList []error
	errList = append(errList, tourID.Validate(), actualRoute.Validate())
	if deliveriesCompleted < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("deliveriesCompleted", deliveriesCompleted, 0, "+inf"))
	}
	if deliveriesFailed < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("deliveriesFailed", deliveriesFailed, 0, "+inf"))
	}
	if err := errors.Join(errList...); err != nil {
		return CompleteTourCommand{}, err
	}

	return CompleteTourCommand{
		tourID:              tourID,
		actualRoute:         actualRoute,
		deliveriesCompleted: deliveriesCompleted,
		deliveriesFailed:    deliveriesFailed,
		notes:               notes,
		actor:               actor,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteTourCommand) Validate() error {
	return c.guard.Validate(ErrCompleteTourCommandIsNotConstructed)
}

func (c CompleteTourCommand) TourID() kernel.UUID { return c.tourID }
func (c CompleteTourCommand) Actor() string       { return c.actor }

// Completion converts the command into the aggregate's completion report.
func (c CompleteTourCommand) Completion() tour.Completion {
	return tour.Completion{
		ActualRoute:         c.actualRoute,
		DeliveriesCompleted: c.deliveriesCompleted,
		DeliveriesFailed:    c.deliveriesFailed,
		Notes:               c.notes,
	}
}

package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tour"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateTourCommandIsNotConstructed = errors.New(
	"CreateTourCommand must be created via NewCreateTourCommand constructor",
)

// CreateTourCommand plans a tour for one driver, one vehicle and a set of shipments.
//
// Example:
//
//	route, _ := tour.NewPlannedRoute("Depot", "Depot", distance, 6*time.Hour)
//	cmd, err := NewCreateTourCommand(kernel.NewUUID(), driverID, vehicleID,
//	    []kernel.UUID{s1, s2}, route, date, "", actor)
type CreateTourCommand struct { //nolint:recvcheck //using for validation
	tourID       kernel.UUID
	driverID     kernel.UUID
	vehicleID    kernel.UUID
	shipmentIDs  []kernel.UUID
	plannedRoute tour.PlannedRoute
	date         time.Time
	notes        string
	actor        string

	guard guard.ConstructorGuard
}

func NewCreateTourCommand(
	tourID kernel.UUID,
	driverID kernel.UUID,
	vehicleID kernel.UUID,
	shipmentIDs []kernel.UUID,
	plannedRoute tour.PlannedRoute,
	date time.Time,
	notes string,
	actor string,
) (CreateTourCommand, error) {
	cmd := CreateTourCommand{
		notes: notes,
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		tourID.Validate(),
		driverID.Validate(),
		vehicleID.Validate(),
		plannedRoute.Validate(),
		cmd.setShipmentIDs(shipmentIDs),
	); err != nil {
		return CreateTourCommand{}, err
	}
	if date.IsZero() {
		return CreateTourCommand{}, tour.ErrDateIsRequired
	}

	cmd.tourID = tourID
	cmd.driverID = driverID
	cmd.vehicleID = vehicleID
	cmd.plannedRoute = plannedRoute
	cmd.date = date
	return cmd, nil
}

func (c CreateTourCommand) Validate() error {
	return c.guard.Validate(ErrCreateTourCommandIsNotConstructed)
}

func (c CreateTourCommand) TourID() kernel.UUID             { return c.tourID }
func (c CreateTourCommand) DriverID() kernel.UUID           { return c.driverID }
func (c CreateTourCommand) VehicleID() kernel.UUID          { return c.vehicleID }
func (c CreateTourCommand) PlannedRoute() tour.PlannedRoute { return c.plannedRoute }
func (c CreateTourCommand) Date() time.Time                 { return c.date }
func (c CreateTourCommand) Notes() string                   { return c.notes }
func (c CreateTourCommand) Actor() string                   { return c.actor }

func (c CreateTourCommand) ShipmentIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(c.shipmentIDs))
	copy(out, c.shipmentIDs)
	return out
}

func (c *CreateTourCommand) setShipmentIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return tour.ErrShipmentsAreRequired
	}
	seen := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		if kernel.ContainsUUID(seen, id) {
			return errs.NewValueIsInvalidError("shipmentIds contain duplicates")
		}
		seen = append(seen, id)
	}
	c.shipmentIDs = seen
	return nil
}

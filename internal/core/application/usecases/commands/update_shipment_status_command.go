package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateShipmentStatusCommandIsNotConstructed = errors.New(
	"UpdateShipmentStatusCommand must be created via NewUpdateShipmentStatusCommand constructor",
)

// UpdateShipmentStatusCommand is a manual status change along the edge table.
type UpdateShipmentStatusCommand struct {
	shipmentID  kernel.UUID
	status      shipment.Status
	location    string
	description string
	actor       string

	guard guard.ConstructorGuard
}

func NewUpdateShipmentStatusCommand(
	shipmentID kernel.UUID,
	status shipment.Status,
	location string,
	description string,
	actor string,
) (UpdateShipmentStatusCommand, error) {
	if err := errors.Join(shipmentID.Validate(), status.Validate()); err != nil {
		return UpdateShipmentStatusCommand{}, err
	}

	return UpdateShipmentStatusCommand{
		shipmentID:  shipmentID,
		status:      status,
		location:    location,
		description: description,
		actor:       actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateShipmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentStatusCommandIsNotConstructed)
}

func (c UpdateShipmentStatusCommand) ShipmentID() kernel.UUID { return c.shipmentID }
func (c UpdateShipmentStatusCommand) Status() shipment.Status { return c.status }
func (c UpdateShipmentStatusCommand) Location() string        { return c.location }
func (c UpdateShipmentStatusCommand) Description() string     { return c.description }
func (c UpdateShipmentStatusCommand) Actor() string           { return c.actor }

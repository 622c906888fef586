package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/pkg/guard"
)

var ErrCreateVehicleCommandIsNotConstructed = errors.New(
	"CreateVehicleCommand must be created via NewCreateVehicleCommand constructor",
)

// CreateVehicleCommand registers an active, available vehicle.
type CreateVehicleCommand struct {
	vehicleID   kernel.UUID
	plateNumber string
	model       string
	mileage     kernel.Distance

	guard guard.ConstructorGuard
}

func NewCreateVehicleCommand(
	vehicleID kernel.UUID,
	plateNumber string,
	model string,
	mileage kernel.Distance,
) (CreateVehicleCommand, error) {
	var plateErr error
	if plateNumber == "" {
		plateErr = vehicle.ErrPlateNumberIsRequired
	}
	if err := errors.Join(vehicleID.Validate(), plateErr, mileage.Validate()); err != nil {
		return CreateVehicleCommand{}, err
	}

	return CreateVehicleCommand{
		vehicleID:   vehicleID,
		plateNumber: plateNumber,
		model:       model,
		mileage:     mileage,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateVehicleCommand) Validate() error {
	return c.guard.Validate(ErrCreateVehicleCommandIsNotConstructed)
}

func (c CreateVehicleCommand) VehicleID() kernel.UUID   { return c.vehicleID }
func (c CreateVehicleCommand) PlateNumber() string      { return c.plateNumber }
func (c CreateVehicleCommand) Model() string            { return c.model }
func (c CreateVehicleCommand) Mileage() kernel.Distance { return c.mileage }

package vehicle

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrPlateNumberIsRequired is returned when attempting to create a vehicle without a plate number.
	ErrPlateNumberIsRequired = errs.NewValueIsRequiredError("plateNumber")
	// ErrVehicleIsNotConstructed is returned when using an improperly initialized Vehicle.
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
)

type Vehicle struct {
	// id uniquely identifies the vehicle
	id kernel.UUID
	// plateNumber is the registration plate
	plateNumber string
	// model is a free-form description such as "Iveco Daily 35S"
	model string
	// mileage is the odometer total accumulated from completed tours
	mileage kernel.Distance
	// availability holds the in_use/available state and the active flag
	availability resource.Availability
	// version is the optimistic concurrency token maintained by the repository
	version int
	// guard ensures the vehicle was properly constructed
	guard guard.ConstructorGuard
}

func NewVehicle(id kernel.UUID, plateNumber string, model string, mileage kernel.Distance) (*Vehicle, error) {
	v := &Vehicle{
		model:        model,
		availability: resource.NewAvailability(resource.Vehicle),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setPlateNumber(plateNumber),
		v.setMileage(mileage),
	); err != nil {
		return nil, err
	}

	return v, nil
}

func RestoreVehicle(
	id kernel.UUID,
	plateNumber string,
	model string,
	mileage kernel.Distance,
	status resource.Status,
	isActive bool,
	version int,
) (*Vehicle, error) {
	availability, err := resource.RestoreAvailability(resource.Vehicle, status, isActive)
	if err != nil {
		return nil, err
	}

	v := &Vehicle{
		model:        model,
		availability: availability,
		version:      version,
		guard:        guard.NewConstructorGuard(),
	}

	if err = errors.Join(
		v.setID(id),
		v.setPlateNumber(plateNumber),
		v.setMileage(mileage),
	); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) IsEqual(other *Vehicle) bool {
	return other != nil && v.id.IsEqual(other.id)
}

func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

func (v *Vehicle) PlateNumber() string {
	return v.plateNumber
}

func (v *Vehicle) Model() string {
	return v.model
}

func (v *Vehicle) Mileage() kernel.Distance {
	return v.mileage
}

func (v *Vehicle) Status() resource.Status {
	return v.availability.Status()
}

func (v *Vehicle) IsActive() bool {
	return v.availability.IsActive()
}

func (v *Vehicle) Version() int {
	return v.version
}

// BumpVersion is called by the repository after a successful write.
func (v *Vehicle) BumpVersion() {
	v.version++
}

// CanBeAllocated returns a Conflict error when the vehicle is inactive or not available.
func (v *Vehicle) CanBeAllocated() error {
	return v.availability.CanBeAllocated()
}

func (v *Vehicle) SetAvailability(status resource.Status) error {
	return v.availability.SetStatus(status)
}

func (v *Vehicle) SetActive(active bool) error {
	return v.availability.SetActive(active)
}

// RecordTrip adds the distance driven on a completed tour to the mileage.
func (v *Vehicle) RecordTrip(distance kernel.Distance) error {
	total, err := v.mileage.Add(distance)
	if err != nil {
		return err
	}

	v.mileage = total
	return nil
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	v.id = id
	return nil
}

func (v *Vehicle) setPlateNumber(plateNumber string) error {
	if plateNumber == "" {
		return ErrPlateNumberIsRequired
	}

	v.plateNumber = plateNumber
	return nil
}

func (v *Vehicle) setMileage(mileage kernel.Distance) error {
	if err := mileage.Validate(); err != nil {
		return err
	}

	v.mileage = mileage
	return nil
}

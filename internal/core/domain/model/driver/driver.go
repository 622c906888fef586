package driver

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrLicenseNumberIsRequired is returned when attempting to create a driver without a license number.
	ErrLicenseNumberIsRequired = errs.NewValueIsRequiredError("licenseNumber")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

type Driver struct {
	// id uniquely identifies the driver
	id kernel.UUID
	// name is the human-readable name of the driver
	name string
	// licenseNumber is the driving license identifier
	licenseNumber string
	// availability holds the on_tour/available state and the active flag
	availability resource.Availability
	// version is the optimistic concurrency token maintained by the repository
	version int
	// guard ensures the driver was properly constructed
	guard guard.ConstructorGuard
}

func NewDriver(id kernel.UUID, name string, licenseNumber string) (*Driver, error) {
	d := &Driver{
		availability: resource.NewAvailability(resource.Driver),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setLicenseNumber(licenseNumber),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func RestoreDriver(
	id kernel.UUID,
	name string,
	licenseNumber string,
	status resource.Status,
	isActive bool,
	version int,
) (*Driver, error) {
	availability, err := resource.RestoreAvailability(resource.Driver, status, isActive)
	if err != nil {
		return nil, err
	}

	d := &Driver{
		availability: availability,
		version:      version,
		guard:        guard.NewConstructorGuard(),
	}

	if err = errors.Join(
		d.setID(id),
		d.setName(name),
		d.setLicenseNumber(licenseNumber),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

func (d *Driver) ID() kernel.UUID {
	return d.id
}

func (d *Driver) Name() string {
	return d.name
}

func (d *Driver) LicenseNumber() string {
	return d.licenseNumber
}

func (d *Driver) Status() resource.Status {
	return d.availability.Status()
}

func (d *Driver) IsActive() bool {
	return d.availability.IsActive()
}

func (d *Driver) Version() int {
	return d.version
}

// BumpVersion is called by the repository after a successful write.
func (d *Driver) BumpVersion() {
	d.version++
}

// CanBeAllocated returns a Conflict error when the driver is inactive or not available.
func (d *Driver) CanBeAllocated() error {
	return d.availability.CanBeAllocated()
}

func (d *Driver) SetAvailability(status resource.Status) error {
	return d.availability.SetStatus(status)
}

func (d *Driver) SetActive(active bool) error {
	return d.availability.SetActive(active)
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	d.name = name
	return nil
}

func (d *Driver) setLicenseNumber(licenseNumber string) error {
	if licenseNumber == "" {
		return ErrLicenseNumberIsRequired
	}

	d.licenseNumber = licenseNumber
	return nil
}

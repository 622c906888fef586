package services

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/core/domain/model/tour"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/pkg/errs"
)

// TourDispatcher is a domain service that checks whether a planned tour can take its
// driver, vehicle and shipments, and binds the shipments once every check has passed.
//
// Business rules:
//   - Driver and vehicle must be active and available
//   - Every requested shipment must have been found eligible; a partial match fails as a whole
//   - No shipment is touched unless all of them can be bound
//
// Example usage:
//
//	dispatcher := services.NewTourDispatcher()
//	if err := dispatcher.Dispatch(t, services.Resources{Driver: drv, Vehicle: veh}, shipments, note); err != nil {
//	    return err // nothing was mutated
//	}
type TourDispatcher struct{}

// Resources are the driver and vehicle a tour asks for.
type Resources struct {
	Driver  *driver.Driver
	Vehicle *vehicle.Vehicle
}

func NewTourDispatcher() TourDispatcher {
	return TourDispatcher{}
}

// Dispatch validates a freshly planned tour against its resources and the shipments
// found eligible for it, then binds the shipments.
func (d TourDispatcher) Dispatch(t *tour.Tour, resources Resources, shipments []*shipment.Shipment, note shipment.Note) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := d.checkResources(t, resources); err != nil {
		return err
	}
	return d.Bind(t, t.ShipmentIDs(), shipments, note)
}

// Bind attaches the requested shipments to the tour. found is what the ledger returned
// for requested; it must cover every requested id and each shipment must be eligible.
func (d TourDispatcher) Bind(t *tour.Tour, requested []kernel.UUID, found []*shipment.Shipment, note shipment.Note) error {
	if len(found) != len(requested) {
		return errs.NewConflictError(
			"tour "+t.Number(),
			fmt.Sprintf("only %d of %d requested shipments are eligible", len(found), len(requested)),
		)
	}

	for _, s := range found {
		if err := s.Validate(); err != nil {
			return err
		}
		if !kernel.ContainsUUID(requested, s.ID()) {
			return errs.NewConflictError("tour "+t.Number(), "shipment "+s.ID().String()+" was not requested")
		}
		if err := s.CheckEligibleForTour(); err != nil {
			return err
		}
	}

	for _, s := range found {
		if err := s.AssignToTour(t.ID(), t.Number(), note); err != nil {
			return err
		}
	}
	return nil
}

// Unbind releases shipments from a tour that is cancelled, deleted or shrunk before dispatch.
func (d TourDispatcher) Unbind(t *tour.Tour, shipments []*shipment.Shipment, note shipment.Note) error {
	for _, s := range shipments {
		if err := s.ReleaseFromTour(t.ID(), t.Number(), note); err != nil {
			return err
		}
	}
	return nil
}

func (d TourDispatcher) checkResources(t *tour.Tour, r Resources) error {
	if err := errors.Join(r.Driver.Validate(), r.Vehicle.Validate()); err != nil {
		return err
	}
	if !r.Driver.ID().IsEqual(t.DriverID()) {
		return errs.NewValueIsInvalidErrorWithCause("driverId", errors.New("driver does not match the tour"))
	}
	if !r.Vehicle.ID().IsEqual(t.VehicleID()) {
		return errs.NewValueIsInvalidErrorWithCause("vehicleId", errors.New("vehicle does not match the tour"))
	}
	return errors.Join(r.Driver.CanBeAllocated(), r.Vehicle.CanBeAllocated())
}

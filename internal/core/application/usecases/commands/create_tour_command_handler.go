package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/resource"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/core/domain/model/tour"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"github.com/sirupsen/logrus"
)

// CreateTourCommandHandler plans a tour and allocates everything it needs in one transaction:
// the eligible shipments are locked, the driver and vehicle are claimed through the
// registry, the tour is inserted and every shipment is bound. Any failure rolls all of it back.
//
// Example:
//
//	handler := NewCreateTourCommandHandler(uowFactory, locker, logger)
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrConflict) {
//	    // driver, vehicle or a shipment is not available
//	}
type CreateTourCommandHandler struct {
	uowFactory UoWFactory
	locker     ports.ResourceLocker
	logger     logrus.FieldLogger
}

func NewCreateTourCommandHandler(
	uowFactory UoWFactory,
	locker ports.ResourceLocker,
	logger logrus.FieldLogger,
) CreateTourCommandHandler {
	return CreateTourCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		logger:     logger.WithField("component", "create_tour"),
	}
}

func (h CreateTourCommandHandler) Handle(ctx context.Context, cmd CreateTourCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock, err := h.locker.Lock(ctx, LockKey(resource.Driver, cmd.DriverID()), LockKey(resource.Vehicle, cmd.VehicleID()))
	if err != nil {
		return err
	}
	defer func() {
		if unlockErr := unlock(ctx); unlockErr != nil {
			h.logger.WithError(unlockErr).Warn("failed to release dispatch lock")
		}
	}()

	now := time.Now()
	newTour, err := tour.NewTour(
		cmd.TourID(), cmd.Date(), cmd.DriverID(), cmd.VehicleID(),
		cmd.ShipmentIDs(), cmd.PlannedRoute(), cmd.Notes(), now,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	vehicleRepo := uow.VehicleRepository()
	shipmentRepo := uow.ShipmentRepository()
	tourRepo := uow.TourRepository()
	registry := uow.ResourceRegistry()

	drv, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}
	veh, err := vehicleRepo.Get(ctx, cmd.VehicleID())
	if err != nil {
		return err
	}
	shipments, err := shipmentRepo.GetEligibleForTour(ctx, cmd.ShipmentIDs())
	if err != nil {
		return err
	}

	note := shipment.Note{At: now, Actor: cmd.Actor()}
	resources := services.Resources{Driver: drv, Vehicle: veh}
	if err = services.NewTourDispatcher().Dispatch(newTour, resources, shipments, note); err != nil {
		return err
	}

	if err = registry.TryAllocate(ctx, resource.NewAllocationClaim(resource.Driver, drv.ID(), newTour.ID())); err != nil {
		return err
	}
	if err = registry.TryAllocate(ctx, resource.NewAllocationClaim(resource.Vehicle, veh.ID(), newTour.ID())); err != nil {
		return err
	}

	if err = tourRepo.Add(ctx, newTour); err != nil {
		return err
	}
	for _, s := range shipments {
		if err = shipmentRepo.Update(ctx, s); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.WithFields(logrus.Fields{
		"tour":      newTour.Number(),
		"driver":    drv.ID().String(),
		"vehicle":   veh.ID().String(),
		"shipments": len(shipments),
	}).Info("tour planned")
	return nil
}

package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/resource"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/core/domain/services"

	"github.com/sirupsen/logrus"
)

// CompleteTourCommandHandler closes a tour. Within one transaction it completes the tour,
// adds the actual distance to the vehicle mileage, settles every bound shipment and
// returns the driver and the vehicle to available.
//
// The tour row is locked first, so a concurrent second completion waits for the first
// to commit and then fails with a conflict without touching anything.
type CompleteTourCommandHandler struct {
	uowFactory UoWFactory
	logger     logrus.FieldLogger
}

func NewCompleteTourCommandHandler(uowFactory UoWFactory, logger logrus.FieldLogger) CompleteTourCommandHandler {
	return CompleteTourCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.WithField("component", "complete_tour"),
	}
}

func (h CompleteTourCommandHandler) Handle(ctx context.Context, cmd CompleteTourCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tourRepo := uow.TourRepository()
	vehicleRepo := uow.VehicleRepository()
	shipmentRepo := uow.ShipmentRepository()
	registry := uow.ResourceRegistry()

	tr, err := tourRepo.GetForUpdate(ctx, cmd.TourID())
	if err != nil {
		return err
	}

	now := time.Now()
	if err = tr.Complete(cmd.Completion(), now); err != nil {
		return err
	}

	veh, err := vehicleRepo.Get(ctx, tr.VehicleID())
	if err != nil {
		return err
	}
	shipments, err := shipmentRepo.GetByTour(ctx, tr.ID())
	if err != nil {
		return err
	}

	report, err := services.NewTourSettlement().Settle(tr, veh, shipments, shipment.Note{At: now, Actor: cmd.Actor()})
	if err != nil {
		return err
	}

	if err = tourRepo.Update(ctx, tr); err != nil {
		return err
	}
	if err = vehicleRepo.Update(ctx, veh); err != nil {
		return err
	}
	if err = registry.Release(ctx, resource.Driver, tr.DriverID(), tr.ID(), resource.Available); err != nil {
		return err
	}
	if err = registry.Release(ctx, resource.Vehicle, tr.VehicleID(), tr.ID(), resource.Available); err != nil {
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
		"tour":      tr.Number(),
		"delivered": len(report.Delivered),
		"failed":    len(report.Failed),
		"skipped":   len(report.Skipped),
	}).Info("tour completed")
	return nil
}

package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/core/domain/model/tour"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// CancelTourCommandHandler cancels a planned tour, releases its driver and vehicle and
// returns its shipments to the status they had before assignment.
type CancelTourCommandHandler struct {
	uowFactory UoWFactory
}

func NewCancelTourCommandHandler(uowFactory UoWFactory) CancelTourCommandHandler {
	return CancelTourCommandHandler{uowFactory: uowFactory}
}

func (h CancelTourCommandHandler) Handle(ctx context.Context, cmd CancelTourCommand) error {
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
	tr, err := tourRepo.GetForUpdate(ctx, cmd.TourID())
	if err != nil {
		return err
	}

	if err = tr.Cancel(cmd.Reason()); err != nil {
		return err
	}
	note := shipment.Note{At: time.Now(), Actor: cmd.Actor(), Description: cancelDescription(tr, cmd.Reason())}
	if err = unwindTour(ctx, uow, tr, note); err != nil {
		return err
	}
	if err = tourRepo.Update(ctx, tr); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func cancelDescription(tr *tour.Tour, reason string) string {
	if reason == "" {
		return "tour " + tr.Number() + " cancelled"
	}
	return "tour " + tr.Number() + " cancelled: " + reason
}

// unwindTour releases the resources held by a tour that never ran and unbinds its shipments.
func unwindTour(ctx context.Context, uow UoW, tr *tour.Tour, note shipment.Note) error {
	shipmentRepo := uow.ShipmentRepository()

	shipments, err := shipmentRepo.GetByTour(ctx, tr.ID())
	if err != nil {
		return err
	}
	if err = services.NewTourDispatcher().Unbind(tr, shipments, note); err != nil {
		return err
	}
	for _, s := range shipments {
		if err = shipmentRepo.Update(ctx, s); err != nil {
			return err
		}
	}

	return releaseResources(ctx, uow.ResourceRegistry(), tr.ID(), tr.DriverID(), tr.VehicleID())
}

func releaseResources(ctx context.Context, registry ports.ResourceRegistry, tourID, driverID, vehicleID kernel.UUID) error {
	if err := registry.Release(ctx, resource.Driver, driverID, tourID, resource.Available); err != nil {
		return err
	}
	return registry.Release(ctx, resource.Vehicle, vehicleID, tourID, resource.Available)
}

package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/shipment"
)

// DeleteTourCommandHandler hard-deletes a tour that is not in progress.
//
// Deleting a planned tour releases its driver and vehicle and unbinds its shipments,
// restoring the status they had before assignment. Deleting a completed or cancelled
// tour only clears the references shipments still hold; their status is final.
type DeleteTourCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteTourCommandHandler(uowFactory UoWFactory) DeleteTourCommandHandler {
	return DeleteTourCommandHandler{uowFactory: uowFactory}
}

func (h DeleteTourCommandHandler) Handle(ctx context.Context, cmd DeleteTourCommand) error {
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
	shipmentRepo := uow.ShipmentRepository()

	tr, err := tourRepo.GetForUpdate(ctx, cmd.TourID())
	if err != nil {
		return err
	}
	if err = tr.ValidateDelete(); err != nil {
		return err
	}

	if tr.HoldsResources() {
		note := shipment.Note{At: time.Now(), Actor: cmd.Actor(), Description: "tour " + tr.Number() + " deleted"}
		if err = unwindTour(ctx, uow, tr, note); err != nil {
			return err
		}
	} else {
		var shipments []*shipment.Shipment
		if shipments, err = shipmentRepo.GetByTour(ctx, tr.ID()); err != nil {
			return err
		}
		for _, s := range shipments {
			s.ClearTourReference(tr.ID())
			if err = shipmentRepo.Update(ctx, s); err != nil {
				return err
			}
		}
		if err = releaseResources(ctx, uow.ResourceRegistry(), tr.ID(), tr.DriverID(), tr.VehicleID()); err != nil {
			return err
		}
	}

	if err = tourRepo.Delete(ctx, tr.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

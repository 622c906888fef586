package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/core/domain/services"
)

// UpdateTourCommandHandler applies a patch to a planned tour. When the shipment list
// changes, newly added shipments are bound under the same eligibility rules as tour
// creation (all or nothing) and removed shipments are released.
type UpdateTourCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateTourCommandHandler(uowFactory UoWFactory) UpdateTourCommandHandler {
	return UpdateTourCommandHandler{uowFactory: uowFactory}
}

func (h UpdateTourCommandHandler) Handle(ctx context.Context, cmd UpdateTourCommand) error {
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

	change, err := tr.Update(cmd.Patch())
	if err != nil {
		return err
	}

	note := shipment.Note{At: time.Now(), Actor: cmd.Actor()}
	dispatcher := services.NewTourDispatcher()
	var touched []*shipment.Shipment

	if len(change.Added) > 0 {
		added, err := shipmentRepo.GetEligibleForTour(ctx, change.Added)
		if err != nil {
			return err
		}
		if err = dispatcher.Bind(tr, change.Added, added, note); err != nil {
			return err
		}
		touched = append(touched, added...)
	}

	if len(change.Removed) > 0 {
		removed, err := shipmentRepo.GetByIDsForUpdate(ctx, change.Removed)
		if err != nil {
			return err
		}
		bound := boundTo(tr.ID(), removed)
		if err = dispatcher.Unbind(tr, bound, note); err != nil {
			return err
		}
		touched = append(touched, bound...)
	}

	for _, s := range touched {
		if err = shipmentRepo.Update(ctx, s); err != nil {
			return err
		}
	}
	if err = tourRepo.Update(ctx, tr); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// boundTo keeps the shipments that still reference tourID.
func boundTo(tourID kernel.UUID, shipments []*shipment.Shipment) []*shipment.Shipment {
	out := make([]*shipment.Shipment, 0, len(shipments))
	for _, s := range shipments {
		if id := s.TourID(); id != nil && id.IsEqual(tourID) {
			out = append(out, s)
		}
	}
	return out
}

package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/shipment"
)

type UpdateShipmentStatusCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

func NewUpdateShipmentStatusCommandHandler(uowFactory ShipmentUoWFactory) UpdateShipmentStatusCommandHandler {
	return UpdateShipmentStatusCommandHandler{uowFactory: uowFactory}
}

// Handle applies the transition and appends one tracking entry. An illegal edge is a
// validation error and nothing is written.
func (h UpdateShipmentStatusCommandHandler) Handle(ctx context.Context, cmd UpdateShipmentStatusCommand) error {
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

	repo := uow.ShipmentRepository()
	s, err := repo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	note := shipment.Note{
		At:          time.Now(),
		Location:    cmd.Location(),
		Description: cmd.Description(),
		Actor:       cmd.Actor(),
	}
	if err = s.Transition(cmd.Status(), note); err != nil {
		return err
	}
	if err = repo.Update(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

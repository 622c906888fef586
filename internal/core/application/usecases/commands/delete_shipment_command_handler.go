package commands

import (
	"context"
)

// DeleteShipmentCommandHandler removes a shipment that is neither invoiced nor bound to a tour.
type DeleteShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

func NewDeleteShipmentCommandHandler(uowFactory ShipmentUoWFactory) DeleteShipmentCommandHandler {
	return DeleteShipmentCommandHandler{uowFactory: uowFactory}
}

func (h DeleteShipmentCommandHandler) Handle(ctx context.Context, cmd DeleteShipmentCommand) error {
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
	if err = s.CanBeDeleted(); err != nil {
		return err
	}
	if err = repo.Delete(ctx, s.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

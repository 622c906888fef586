package commands

import (
	"context"
)

type MarkShipmentInvoicedCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

func NewMarkShipmentInvoicedCommandHandler(uowFactory ShipmentUoWFactory) MarkShipmentInvoicedCommandHandler {
	return MarkShipmentInvoicedCommandHandler{uowFactory: uowFactory}
}

func (h MarkShipmentInvoicedCommandHandler) Handle(ctx context.Context, cmd MarkShipmentInvoicedCommand) error {
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

	s.MarkInvoiced()
	if err = repo.Update(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

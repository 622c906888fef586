package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/shipment"
)

type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

func NewCreateShipmentCommandHandler(uowFactory ShipmentUoWFactory) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{uowFactory: uowFactory}
}

// Handle registers a pending shipment. A duplicate tracking number surfaces as a conflict
// from the repository.
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	s, err := shipment.NewShipment(
		cmd.ShipmentID(),
		cmd.TrackingNumber(),
		cmd.RecipientName(),
		cmd.Destination(),
		cmd.Weight(),
		shipment.Note{At: time.Now(), Actor: cmd.Actor()},
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

	if err = uow.ShipmentRepository().Add(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

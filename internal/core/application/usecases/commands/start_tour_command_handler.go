package commands

import (
	"context"
	"time"
)

type StartTourCommandHandler struct {
	uowFactory UoWFactory
}

func NewStartTourCommandHandler(uowFactory UoWFactory) StartTourCommandHandler {
	return StartTourCommandHandler{uowFactory: uowFactory}
}

// Handle moves the tour to in_progress. Shipment membership is frozen from here on.
func (h StartTourCommandHandler) Handle(ctx context.Context, cmd StartTourCommand) error {
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

	if err = tr.Start(time.Now()); err != nil {
		return err
	}
	if err = tourRepo.Update(ctx, tr); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

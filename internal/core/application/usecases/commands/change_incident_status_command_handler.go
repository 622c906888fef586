package commands

import (
	"context"
)

type ChangeIncidentStatusCommandHandler struct {
	uowFactory IncidentUoWFactory
}

func NewChangeIncidentStatusCommandHandler(uowFactory IncidentUoWFactory) ChangeIncidentStatusCommandHandler {
	return ChangeIncidentStatusCommandHandler{uowFactory: uowFactory}
}

func (h ChangeIncidentStatusCommandHandler) Handle(ctx context.Context, cmd ChangeIncidentStatusCommand) error {
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

	repo := uow.IncidentRepository()
	inc, err := repo.Get(ctx, cmd.IncidentID())
	if err != nil {
		return err
	}
	if err = inc.ChangeStatus(cmd.Status()); err != nil {
		return err
	}
	if err = repo.Update(ctx, inc); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

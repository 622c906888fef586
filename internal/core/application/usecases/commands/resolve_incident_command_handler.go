package commands

import (
	"context"
	"time"
)

type ResolveIncidentCommandHandler struct {
	uowFactory IncidentUoWFactory
}

func NewResolveIncidentCommandHandler(uowFactory IncidentUoWFactory) ResolveIncidentCommandHandler {
	return ResolveIncidentCommandHandler{uowFactory: uowFactory}
}

// Handle stamps resolvedAt, resolvedBy and the resolution text.
func (h ResolveIncidentCommandHandler) Handle(ctx context.Context, cmd ResolveIncidentCommand) error {
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
	if err = inc.Resolve(cmd.ResolverID(), cmd.Resolution(), time.Now()); err != nil {
		return err
	}
	if err = repo.Update(ctx, inc); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

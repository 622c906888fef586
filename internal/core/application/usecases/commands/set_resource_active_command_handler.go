package commands

import (
	"context"

	"dispatch/internal/core/domain/model/resource"
)

type SetResourceActiveCommandHandler struct {
	uowFactory ResourceUoWFactory
}

func NewSetResourceActiveCommandHandler(uowFactory ResourceUoWFactory) SetResourceActiveCommandHandler {
	return SetResourceActiveCommandHandler{uowFactory: uowFactory}
}

// Handle activates or deactivates a resource. Deactivating a resource bound to a tour is a conflict.
func (h SetResourceActiveCommandHandler) Handle(ctx context.Context, cmd SetResourceActiveCommand) error {
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

	switch cmd.Kind() {
	case resource.Driver:
		repo := uow.DriverRepository()
		d, err := repo.Get(ctx, cmd.ResourceID())
		if err != nil {
			return err
		}
		if err = d.SetActive(cmd.Active()); err != nil {
			return err
		}
		if err = repo.Update(ctx, d); err != nil {
			return err
		}
	case resource.Vehicle:
		repo := uow.VehicleRepository()
		v, err := repo.Get(ctx, cmd.ResourceID())
		if err != nil {
			return err
		}
		if err = v.SetActive(cmd.Active()); err != nil {
			return err
		}
		if err = repo.Update(ctx, v); err != nil {
			return err
		}
	case resource.UnknownKind:
		return cmd.Kind().Validate()
	default:
		return cmd.Kind().Validate()
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"

	"dispatch/internal/core/domain/model/resource"
)

// SetResourceAvailabilityCommandHandler applies an operator availability change. A resource
// bound to a tour is refused with a conflict; the versioned update also refuses the change
// when dispatch allocated the resource after it was read.
type SetResourceAvailabilityCommandHandler struct {
	uowFactory ResourceUoWFactory
}

func NewSetResourceAvailabilityCommandHandler(uowFactory ResourceUoWFactory) SetResourceAvailabilityCommandHandler {
	return SetResourceAvailabilityCommandHandler{uowFactory: uowFactory}
}

func (h SetResourceAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetResourceAvailabilityCommand) error {
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
		if err = d.SetAvailability(cmd.Status()); err != nil {
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
		if err = v.SetAvailability(cmd.Status()); err != nil {
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

package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateShipmentStatusCommandHandler_Handle_AppendsHistory(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	s := pendingShipment(t)

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.shipments.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once(),
		r.shipments.On("Update", ctx, s).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewUpdateShipmentStatusCommand(s.ID(), shipment.PickedUp, "Hamburg hub", "collected", "courier-7")
	require.NoError(t, err)

	err = commands.NewUpdateShipmentStatusCommandHandler(MockShipmentUoWFactory{uow: r.uow}).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.PickedUp, s.Status())
	last := s.History()[len(s.History())-1]
	assert.Equal(t, shipment.EventStatusChanged, last.Event())
	assert.Equal(t, "Hamburg hub", last.Location())
	assert.Equal(t, "courier-7", last.Actor())
	r.assertExpectations(t)
}

func TestUpdateShipmentStatusCommandHandler_Handle_IllegalEdge(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	s := pendingShipment(t)

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.shipments.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once()

	cmd, err := commands.NewUpdateShipmentStatusCommand(s.ID(), shipment.Delivered, "", "", "courier-7")
	require.NoError(t, err)

	err = commands.NewUpdateShipmentStatusCommandHandler(MockShipmentUoWFactory{uow: r.uow}).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, shipment.Pending, s.Status())
	assert.Len(t, s.History(), 1)
	r.shipments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	r.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateShipmentStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	id := kernel.NewUUID()

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.shipments.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("shipmentID", id)).Once()

	cmd, err := commands.NewUpdateShipmentStatusCommand(id, shipment.PickedUp, "", "", "")
	require.NoError(t, err)

	err = commands.NewUpdateShipmentStatusCommandHandler(MockShipmentUoWFactory{uow: r.uow}).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCreateShipmentCommandHandler_Handle_GeneratesTrackingNumber(t *testing.T) {
	ctx := t.Context()
	r := newRepos()

	var added *shipment.Shipment
	r.uow.On("Begin", ctx).Return(nil).Once()
	r.shipments.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Run(func(args mock.Arguments) {
		added = args.Get(1).(*shipment.Shipment)
	}).Return(nil).Once()
	r.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), "", "Jane Roe", "Main St 1", decimal.RequireFromString("2.5"), "clerk")
	require.NoError(t, err)

	err = commands.NewCreateShipmentCommandHandler(MockShipmentUoWFactory{uow: r.uow}).Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, added)
	assert.Regexp(t, `^SHP[A-Z0-9]{10}$`, added.TrackingNumber())
	assert.Equal(t, shipment.Pending, added.Status())
	r.assertExpectations(t)
}

func TestDeleteShipmentCommandHandler_Handle_RefusesAssignedShipment(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	s := pendingShipment(t)
	plannedTour(t, kernel.NewUUID(), kernel.NewUUID(), s)

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.shipments.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once()

	cmd, err := commands.NewDeleteShipmentCommand(s.ID())
	require.NoError(t, err)

	err = commands.NewDeleteShipmentCommandHandler(MockShipmentUoWFactory{uow: r.uow}).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	r.shipments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

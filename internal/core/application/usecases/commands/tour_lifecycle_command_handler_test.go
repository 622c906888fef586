package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/core/domain/model/tour"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TourLifecycleSuite struct {
	suite.Suite

	repos     repos
	driverID  kernel.UUID
	vehicleID kernel.UUID
	delivered *shipment.Shipment
	missed    *shipment.Shipment
	tour      *tour.Tour
}

func TestTourLifecycleSuite(t *testing.T) {
	suite.Run(t, new(TourLifecycleSuite))
}

func (s *TourLifecycleSuite) SetupTest() {
	t := s.T()
	s.repos = newRepos()
	s.driverID = kernel.NewUUID()
	s.vehicleID = kernel.NewUUID()
	s.delivered = pendingShipment(t)
	s.missed = pendingShipment(t)
	s.tour = plannedTour(t, s.driverID, s.vehicleID, s.delivered, s.missed)
}

func (s *TourLifecycleSuite) completeCommand(km int64) commands.CompleteTourCommand {
	distance, err := kernel.NewDistance(decimal.NewFromInt(km))
	s.Require().NoError(err)
	route, err := tour.NewActualRoute(nil, nil, distance)
	s.Require().NoError(err)
	cmd, err := commands.NewCompleteTourCommand(s.tour.ID(), route, 1, 1, nil, "driver-app")
	s.Require().NoError(err)
	return cmd
}

func (s *TourLifecycleSuite) TestComplete_SettlesShipmentsAndReleasesResources() {
	ctx := s.T().Context()
	r := s.repos
	veh := allocatedVehicle(s.T(), s.vehicleID)
	s.Require().NoError(s.tour.Start(tourDate))
	s.Require().NoError(s.delivered.Transition(shipment.OutForDelivery, shipment.Note{At: tourDate}))

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.tours.On("GetForUpdate", ctx, s.tour.ID()).Return(s.tour, nil).Once(),
		r.vehicles.On("Get", ctx, s.vehicleID).Return(veh, nil).Once(),
		r.shipments.On("GetByTour", ctx, s.tour.ID()).Return([]*shipment.Shipment{s.delivered, s.missed}, nil).Once(),
		r.tours.On("Update", ctx, s.tour).Return(nil).Once(),
		r.vehicles.On("Update", ctx, veh).Return(nil).Once(),
		r.registry.On("Release", ctx, resource.Driver, s.driverID, s.tour.ID(), resource.Available).Return(nil).Once(),
		r.registry.On("Release", ctx, resource.Vehicle, s.vehicleID, s.tour.ID(), resource.Available).Return(nil).Once(),
		r.shipments.On("Update", ctx, s.delivered).Return(nil).Once(),
		r.shipments.On("Update", ctx, s.missed).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
	)

	logger, _ := test.NewNullLogger()
	err := commands.NewCompleteTourCommandHandler(MockUoWFactory{uow: r.uow}, logger).Handle(ctx, s.completeCommand(40))

	s.Require().NoError(err)
	s.Equal(tour.Completed, s.tour.Status())
	s.Equal(shipment.Delivered, s.delivered.Status())
	s.NotNil(s.delivered.ActualDeliveryDate())
	s.Equal(shipment.FailedDelivery, s.missed.Status())
	s.True(s.missed.TourID().IsEqual(s.tour.ID()))
	s.Equal("40", veh.Mileage().Kilometres().String())
	r.assertExpectations(s.T())
}

func (s *TourLifecycleSuite) TestComplete_SecondCompletionConflicts() {
	ctx := s.T().Context()
	r := s.repos
	s.Require().NoError(s.tour.Complete(s.completeCommand(10).Completion(), tourDate))

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.tours.On("GetForUpdate", ctx, s.tour.ID()).Return(s.tour, nil).Once()

	logger, _ := test.NewNullLogger()
	err := commands.NewCompleteTourCommandHandler(MockUoWFactory{uow: r.uow}, logger).Handle(ctx, s.completeCommand(40))

	s.Require().ErrorIs(err, errs.ErrConflict)
	r.vehicles.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
	r.registry.AssertNotCalled(s.T(), "Release", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	r.uow.AssertNotCalled(s.T(), "Commit", mock.Anything)
}

func (s *TourLifecycleSuite) TestCancel_RestoresShipmentsAndReleasesResources() {
	ctx := s.T().Context()
	r := s.repos

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.tours.On("GetForUpdate", ctx, s.tour.ID()).Return(s.tour, nil).Once()
	r.shipments.On("GetByTour", ctx, s.tour.ID()).Return([]*shipment.Shipment{s.delivered, s.missed}, nil).Once()
	r.shipments.On("Update", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Twice()
	r.registry.On("Release", ctx, resource.Driver, s.driverID, s.tour.ID(), resource.Available).Return(nil).Once()
	r.registry.On("Release", ctx, resource.Vehicle, s.vehicleID, s.tour.ID(), resource.Available).Return(nil).Once()
	r.tours.On("Update", ctx, s.tour).Return(nil).Once()
	r.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewCancelTourCommand(s.tour.ID(), "vehicle broke down", "dispatcher-1")
	s.Require().NoError(err)

	err = commands.NewCancelTourCommandHandler(MockUoWFactory{uow: r.uow}).Handle(ctx, cmd)

	s.Require().NoError(err)
	s.Equal(tour.Cancelled, s.tour.Status())
	s.Equal("vehicle broke down", s.tour.CancellationReason())
	for _, sh := range []*shipment.Shipment{s.delivered, s.missed} {
		s.Equal(shipment.Pending, sh.Status())
		s.Nil(sh.TourID())
		s.Equal(shipment.EventTourReleased, sh.History()[len(sh.History())-1].Event())
	}
	r.assertExpectations(s.T())
}

func (s *TourLifecycleSuite) TestCancel_InProgressConflicts() {
	ctx := s.T().Context()
	r := s.repos
	s.Require().NoError(s.tour.Start(tourDate))

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.tours.On("GetForUpdate", ctx, s.tour.ID()).Return(s.tour, nil).Once()

	cmd, err := commands.NewCancelTourCommand(s.tour.ID(), "", "dispatcher-1")
	s.Require().NoError(err)

	err = commands.NewCancelTourCommandHandler(MockUoWFactory{uow: r.uow}).Handle(ctx, cmd)

	s.Require().ErrorIs(err, errs.ErrConflict)
	r.shipments.AssertNotCalled(s.T(), "GetByTour", mock.Anything, mock.Anything)
}

func (s *TourLifecycleSuite) TestDelete_PlannedTourUnwinds() {
	ctx := s.T().Context()
	r := s.repos

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.tours.On("GetForUpdate", ctx, s.tour.ID()).Return(s.tour, nil).Once()
	r.shipments.On("GetByTour", ctx, s.tour.ID()).Return([]*shipment.Shipment{s.delivered, s.missed}, nil).Once()
	r.shipments.On("Update", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Twice()
	r.registry.On("Release", ctx, mock.Anything, mock.Anything, s.tour.ID(), resource.Available).Return(nil).Twice()
	r.tours.On("Delete", ctx, s.tour.ID()).Return(nil).Once()
	r.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewDeleteTourCommand(s.tour.ID(), "dispatcher-1")
	s.Require().NoError(err)

	err = commands.NewDeleteTourCommandHandler(MockUoWFactory{uow: r.uow}).Handle(ctx, cmd)

	s.Require().NoError(err)
	s.Equal(shipment.Pending, s.delivered.Status())
	s.Nil(s.delivered.TourID())
	r.assertExpectations(s.T())
}

func (s *TourLifecycleSuite) TestDelete_CompletedTourClearsReferencesOnly() {
	ctx := s.T().Context()
	r := s.repos
	s.Require().NoError(s.delivered.Transition(shipment.OutForDelivery, shipment.Note{At: tourDate}))
	_, _, err := s.delivered.Settle(s.tour.Number(), shipment.Note{At: tourDate})
	s.Require().NoError(err)
	s.Require().NoError(s.tour.Complete(s.completeCommand(5).Completion(), tourDate))
	historyLen := len(s.delivered.History())

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.tours.On("GetForUpdate", ctx, s.tour.ID()).Return(s.tour, nil).Once()
	r.shipments.On("GetByTour", ctx, s.tour.ID()).Return([]*shipment.Shipment{s.delivered}, nil).Once()
	r.shipments.On("Update", ctx, s.delivered).Return(nil).Once()
	r.registry.On("Release", ctx, mock.Anything, mock.Anything, s.tour.ID(), resource.Available).Return(nil).Twice()
	r.tours.On("Delete", ctx, s.tour.ID()).Return(nil).Once()
	r.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewDeleteTourCommand(s.tour.ID(), "dispatcher-1")
	s.Require().NoError(err)

	err = commands.NewDeleteTourCommandHandler(MockUoWFactory{uow: r.uow}).Handle(ctx, cmd)

	s.Require().NoError(err)
	s.Equal(shipment.Delivered, s.delivered.Status())
	s.Nil(s.delivered.TourID())
	s.Len(s.delivered.History(), historyLen)
	r.assertExpectations(s.T())
}

func (s *TourLifecycleSuite) TestDelete_InProgressConflicts() {
	ctx := s.T().Context()
	r := s.repos
	s.Require().NoError(s.tour.Start(tourDate))

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.tours.On("GetForUpdate", ctx, s.tour.ID()).Return(s.tour, nil).Once()

	cmd, err := commands.NewDeleteTourCommand(s.tour.ID(), "dispatcher-1")
	s.Require().NoError(err)

	err = commands.NewDeleteTourCommandHandler(MockUoWFactory{uow: r.uow}).Handle(ctx, cmd)

	s.Require().ErrorIs(err, errs.ErrConflict)
	r.tours.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything)
}

func (s *TourLifecycleSuite) TestUpdate_SwapsShipments() {
	ctx := s.T().Context()
	r := s.repos
	extra := pendingShipment(s.T())
	ids := []kernel.UUID{s.delivered.ID(), extra.ID()}

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.tours.On("GetForUpdate", ctx, s.tour.ID()).Return(s.tour, nil).Once()
	r.shipments.On("GetEligibleForTour", ctx, []kernel.UUID{extra.ID()}).Return([]*shipment.Shipment{extra}, nil).Once()
	r.shipments.On("GetByIDsForUpdate", ctx, []kernel.UUID{s.missed.ID()}).Return([]*shipment.Shipment{s.missed}, nil).Once()
	r.shipments.On("Update", ctx, extra).Return(nil).Once()
	r.shipments.On("Update", ctx, s.missed).Return(nil).Once()
	r.tours.On("Update", ctx, s.tour).Return(nil).Once()
	r.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewUpdateTourCommand(s.tour.ID(), tour.Patch{ShipmentIDs: ids}, "dispatcher-1")
	s.Require().NoError(err)

	err = commands.NewUpdateTourCommandHandler(MockUoWFactory{uow: r.uow}).Handle(ctx, cmd)

	s.Require().NoError(err)
	s.ElementsMatch(ids, s.tour.ShipmentIDs())
	s.True(extra.TourID().IsEqual(s.tour.ID()))
	s.Equal(shipment.InTransit, extra.Status())
	s.Nil(s.missed.TourID())
	s.Equal(shipment.Pending, s.missed.Status())
	r.assertExpectations(s.T())
}

func (s *TourLifecycleSuite) TestStart_FreezesPlannedTour() {
	ctx := s.T().Context()
	r := s.repos

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.tours.On("GetForUpdate", ctx, s.tour.ID()).Return(s.tour, nil).Once()
	r.tours.On("Update", ctx, s.tour).Return(nil).Once()
	r.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewStartTourCommand(s.tour.ID())
	s.Require().NoError(err)

	s.Require().NoError(commands.NewStartTourCommandHandler(MockUoWFactory{uow: r.uow}).Handle(ctx, cmd))
	s.Equal(tour.InProgress, s.tour.Status())
	s.NotNil(s.tour.StartedAt())

	_, err = s.tour.Update(tour.Patch{ShipmentIDs: []kernel.UUID{s.delivered.ID()}})
	s.Require().ErrorIs(err, errs.ErrConflict)
}

func TestNewCompleteTourCommand_RejectsNegativeCounters(t *testing.T) {
	route, err := tour.NewActualRoute(nil, nil, kernel.ZeroDistance())
	require.NoError(t, err)

	_, err = commands.NewCompleteTourCommand(kernel.NewUUID(), route, -1, 0, nil, "")

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Contains(t, err.Error(), "deliveriesCompleted")
}

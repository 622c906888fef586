package shipmentrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/adapters/out/postgres/shipmentrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type ShipmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *shipmentrepo.GormShipmentRepository
	tracker    *MockAggregateTracker
}

func TestShipmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentRepositoryIntegrationTestSuite))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = shipmentrepo.NewGormShipmentRepository(suite.database.DB, suite.tracker)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsHistory() {
	ctx := context.Background()
	s := suite.newShipment("")
	suite.Require().NoError(s.Transition(shipment.PickedUp, shipment.Note{At: time.Now(), Location: "Hub", Actor: "c-1"}))
	suite.Require().NoError(suite.repository.Add(ctx, s))

	stored, err := suite.repository.Get(ctx, s.ID())

	suite.Require().NoError(err)
	suite.Equal(s.TrackingNumber(), stored.TrackingNumber())
	suite.Equal(shipment.PickedUp, stored.Status())
	suite.True(s.Weight().Equal(stored.Weight()))
	suite.Require().Len(stored.History(), 2)
	suite.Equal(shipment.EventCreated, stored.History()[0].Event())
	suite.Equal("Hub", stored.History()[1].Location())
	suite.Equal("c-1", stored.History()[1].Actor())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", s.ID(), s)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_DuplicateTrackingNumberConflicts() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newShipment("SHPDUPLICATE1")))

	err := suite.repository.Add(ctx, suite.newShipment("SHPDUPLICATE1"))

	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_AppendsOnlyNewEntries() {
	ctx := context.Background()
	s := suite.newShipment("")
	suite.Require().NoError(suite.repository.Add(ctx, s))

	suite.Require().NoError(s.Transition(shipment.PickedUp, shipment.Note{At: time.Now()}))
	suite.Require().NoError(suite.repository.Update(ctx, s))
	suite.Require().NoError(s.Transition(shipment.InTransit, shipment.Note{At: time.Now()}))
	suite.Require().NoError(suite.repository.Update(ctx, s))

	stored, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.InTransit, stored.Status())
	suite.Len(stored.History(), 3)
	suite.Equal(2, stored.Version())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_StaleVersionIsRejected() {
	ctx := context.Background()
	s := suite.newShipment("")
	suite.Require().NoError(suite.repository.Add(ctx, s))

	stale, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(s.Transition(shipment.PickedUp, shipment.Note{At: time.Now()}))
	suite.Require().NoError(suite.repository.Update(ctx, s))

	suite.Require().NoError(stale.Transition(shipment.Cancelled, shipment.Note{At: time.Now()}))
	err = suite.repository.Update(ctx, stale)

	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetEligibleForTour_FiltersIneligible() {
	ctx := context.Background()
	eligible := suite.newShipment("")
	invoiced := suite.newShipment("")
	invoiced.MarkInvoiced()
	cancelled := suite.newShipment("")
	suite.Require().NoError(cancelled.Transition(shipment.Cancelled, shipment.Note{At: time.Now()}))
	for _, s := range []*shipment.Shipment{eligible, invoiced, cancelled} {
		suite.Require().NoError(suite.repository.Add(ctx, s))
	}

	found, err := suite.repository.GetEligibleForTour(ctx,
		[]kernel.UUID{eligible.ID(), invoiced.ID(), cancelled.ID(), kernel.NewUUID()})

	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.True(found[0].ID().IsEqual(eligible.ID()))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	s := suite.newShipment("")
	suite.Require().NoError(suite.repository.Add(ctx, s))

	suite.Require().NoError(suite.repository.Delete(ctx, s.ID()))

	_, err := suite.repository.Get(ctx, s.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Require().ErrorIs(suite.repository.Delete(ctx, s.ID()), errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) newShipment(trackingNumber string) *shipment.Shipment {
	s, err := shipment.NewShipment(kernel.NewUUID(), trackingNumber, "Jane Roe", "Main St 1",
		decimal.RequireFromString("1.250"), shipment.Note{At: time.Now()})
	suite.Require().NoError(err)
	return s
}

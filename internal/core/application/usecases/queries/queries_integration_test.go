package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/adapters/out/postgres/registry"
	"dispatch/internal/adapters/out/postgres/shipmentrepo"
	"dispatch/internal/adapters/out/postgres/tourrepo"
	"dispatch/internal/adapters/out/postgres/vehiclerepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/core/domain/model/tour"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

// QueriesIntegrationTestSuite seeds a small fleet with one planned tour and
// reads it back through every query handler.
type QueriesIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database

	driver    *driver.Driver
	idle      *driver.Driver
	vehicle   *vehicle.Vehicle
	shipments []*shipment.Shipment
	tour      *tour.Tour
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.seed()
}

func (suite *QueriesIntegrationTestSuite) TestGetTour() {
	query, err := queries.NewGetTourQuery(suite.tour.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetTourQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(suite.tour.Number(), view.Number)
	suite.Equal(tour.Planned, view.Status)
	suite.True(view.DriverID.IsEqual(suite.driver.ID()))
	suite.Equal(suite.tour.ShipmentIDs(), view.ShipmentIDs)
	suite.Equal("Depot North", view.PlannedRoute.StartLocation)
	suite.Equal(2*time.Hour, view.PlannedRoute.EstimatedDuration)
	suite.Nil(view.ActualRoute)
}

func (suite *QueriesIntegrationTestSuite) TestGetTour_NotFound() {
	query, err := queries.NewGetTourQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetTourQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListTours_Filters() {
	handler := queries.NewListToursQueryHandler(suite.database.DB)
	date := suite.tour.Date()
	planned, completed := tour.Planned, tour.Completed

	all, err := handler.Handle(context.Background(), suite.listQuery(nil, nil))
	suite.Require().NoError(err)
	suite.Require().Len(all, 1)
	suite.Equal(2, all[0].ShipmentCount)

	onDay, err := handler.Handle(context.Background(), suite.listQuery(&date, &planned))
	suite.Require().NoError(err)
	suite.Len(onDay, 1)

	otherDay := date.AddDate(0, 0, 1)
	none, err := handler.Handle(context.Background(), suite.listQuery(&otherDay, nil))
	suite.Require().NoError(err)
	suite.Empty(none)

	none, err = handler.Handle(context.Background(), suite.listQuery(nil, &completed))
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *QueriesIntegrationTestSuite) TestGetShipment_WithHistory() {
	query, err := queries.NewGetShipmentQuery(suite.shipments[0].ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetShipmentQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(shipment.InTransit, view.Status)
	suite.Require().NotNil(view.TourID)
	suite.True(view.TourID.IsEqual(suite.tour.ID()))
	suite.Require().Len(view.History, 2)
	suite.Equal(shipment.EventCreated, view.History[0].Event)
	suite.Equal(shipment.EventTourAssigned, view.History[1].Event)
	suite.True(decimal.RequireFromString("3.5").Equal(view.Weight))
}

func (suite *QueriesIntegrationTestSuite) TestGetShipmentTransitions() {
	query, err := queries.NewGetShipmentTransitionsQuery(suite.shipments[0].ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetShipmentTransitionsQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(shipment.InTransit, view.Current)
	suite.ElementsMatch([]shipment.Status{shipment.AtSortingCenter, shipment.OutForDelivery}, view.Allowed)

	missing, err := queries.NewGetShipmentTransitionsQuery(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = queries.NewGetShipmentTransitionsQueryHandler(suite.database.DB).Handle(context.Background(), missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListResources() {
	handler := queries.NewListResourcesQueryHandler(suite.database.DB)
	available := resource.Available

	query, err := queries.NewListResourcesQuery(resource.Driver, &available, true)
	suite.Require().NoError(err)
	drivers, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(drivers, 1)
	suite.True(drivers[0].ID.IsEqual(suite.idle.ID()))
	suite.Nil(drivers[0].Mileage)

	query, err = queries.NewListResourcesQuery(resource.Vehicle, nil, false)
	suite.Require().NoError(err)
	vehicles, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(vehicles, 1)
	suite.Equal(resource.Allocated, vehicles[0].Status)
	suite.Require().NotNil(vehicles[0].Mileage)
	suite.True(decimal.RequireFromString("12000").Equal(*vehicles[0].Mileage))
}

func (suite *QueriesIntegrationTestSuite) TestGetAllocationAnomalies() {
	handler := queries.NewGetAllocationAnomaliesQueryHandler(suite.database.DB)

	clean, err := handler.Handle(context.Background(), queries.NewGetAllocationAnomaliesQuery())
	suite.Require().NoError(err)
	suite.Empty(clean)

	db := suite.database.DB
	suite.Require().NoError(db.Exec(`UPDATE drivers SET status = ? WHERE id = ?`,
		int(resource.Allocated), suite.idle.ID().Bytes()).Error)
	suite.Require().NoError(db.Exec(`DELETE FROM resource_allocations WHERE kind = ?`, int(resource.Vehicle)).Error)

	anomalies, err := handler.Handle(context.Background(), queries.NewGetAllocationAnomaliesQuery())

	suite.Require().NoError(err)
	suite.Require().Len(anomalies, 3)
	reasons := make(map[queries.AnomalyReason][]kernel.UUID)
	for _, a := range anomalies {
		reasons[a.Reason] = append(reasons[a.Reason], a.ResourceID)
	}
	suite.Len(reasons[queries.AllocatedWithoutAllocation], 2, "idle driver and orphaned vehicle")
	suite.Require().Len(reasons[queries.ActiveTourWithoutAllocation], 1)
	suite.True(reasons[queries.ActiveTourWithoutAllocation][0].IsEqual(suite.vehicle.ID()))
}

func (suite *QueriesIntegrationTestSuite) listQuery(date *time.Time, status *tour.Status) queries.ListToursQuery {
	q, err := queries.NewListToursQuery(date, status)
	suite.Require().NoError(err)
	return q
}

func (suite *QueriesIntegrationTestSuite) seed() {
	ctx := context.Background()
	db := suite.database.DB
	drivers := driverrepo.NewGormDriverRepository(db, nopTracker{})
	vehicles := vehiclerepo.NewGormVehicleRepository(db, nopTracker{})
	shipments := shipmentrepo.NewGormShipmentRepository(db, nopTracker{})
	tours := tourrepo.NewGormTourRepository(db, nopTracker{})
	resources := registry.NewGormResourceRegistry(db)

	var err error
	suite.driver, err = driver.NewDriver(kernel.NewUUID(), "Anna Schmidt", "B-100200")
	suite.Require().NoError(err)
	suite.idle, err = driver.NewDriver(kernel.NewUUID(), "Ben Ott", "B-100300")
	suite.Require().NoError(err)
	mileage, err := kernel.DistanceFromFloat(12000)
	suite.Require().NoError(err)
	suite.vehicle, err = vehicle.NewVehicle(kernel.NewUUID(), "HH-DX-42", "eSprinter", mileage)
	suite.Require().NoError(err)
	suite.Require().NoError(drivers.Add(ctx, suite.driver))
	suite.Require().NoError(drivers.Add(ctx, suite.idle))
	suite.Require().NoError(vehicles.Add(ctx, suite.vehicle))

	suite.shipments = nil
	for _, recipient := range []string{"ACME GmbH", "Kiosk 24"} {
		s, newErr := shipment.NewShipment(kernel.NewUUID(), "", recipient, "Hafenstr. 1",
			decimal.RequireFromString("3.5"), shipment.Note{At: time.Now()})
		suite.Require().NoError(newErr)
		suite.shipments = append(suite.shipments, s)
	}

	distance, err := kernel.DistanceFromFloat(48)
	suite.Require().NoError(err)
	route, err := tour.NewPlannedRoute("Depot North", "Depot North", distance, 2*time.Hour)
	suite.Require().NoError(err)
	ids := []kernel.UUID{suite.shipments[0].ID(), suite.shipments[1].ID()}
	suite.tour, err = tour.NewTour(kernel.NewUUID(), time.Now().AddDate(0, 0, 1),
		suite.driver.ID(), suite.vehicle.ID(), ids, route, "", time.Now())
	suite.Require().NoError(err)

	suite.Require().NoError(tours.Add(ctx, suite.tour))
	for _, s := range suite.shipments {
		suite.Require().NoError(s.AssignToTour(suite.tour.ID(), suite.tour.Number(), shipment.Note{At: time.Now()}))
		suite.Require().NoError(shipments.Add(ctx, s))
	}
	suite.Require().NoError(resources.TryAllocate(ctx, resource.NewAllocationClaim(resource.Driver, suite.driver.ID(), suite.tour.ID())))
	suite.Require().NoError(resources.TryAllocate(ctx, resource.NewAllocationClaim(resource.Vehicle, suite.vehicle.ID(), suite.tour.ID())))
}

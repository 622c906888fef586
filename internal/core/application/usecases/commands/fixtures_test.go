package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/core/domain/model/tour"
	"dispatch/internal/core/domain/model/vehicle"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var tourDate = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func availableDriver(t *testing.T) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), "Anna", "L-1")
	require.NoError(t, err)
	return d
}

func availableVehicle(t *testing.T) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "HH-1", "Sprinter", kernel.ZeroDistance())
	require.NoError(t, err)
	return v
}

func allocatedVehicle(t *testing.T, id kernel.UUID) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.RestoreVehicle(id, "HH-1", "Sprinter", kernel.ZeroDistance(), resource.Allocated, true, 1)
	require.NoError(t, err)
	return v
}

func pendingShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(kernel.NewUUID(), "", "R", "D", decimal.NewFromInt(1), shipment.Note{At: tourDate})
	require.NoError(t, err)
	return s
}

func shipmentIDs(shipments []*shipment.Shipment) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(shipments))
	for _, s := range shipments {
		ids = append(ids, s.ID())
	}
	return ids
}

func plannedRoute(t *testing.T) tour.PlannedRoute {
	t.Helper()
	route, err := tour.NewPlannedRoute("Depot", "Depot", kernel.ZeroDistance(), 4*time.Hour)
	require.NoError(t, err)
	return route
}

// plannedTour returns a planned tour with the given shipments already bound to it.
func plannedTour(t *testing.T, driverID, vehicleID kernel.UUID, shipments ...*shipment.Shipment) *tour.Tour {
	t.Helper()
	tr, err := tour.NewTour(kernel.NewUUID(), tourDate, driverID, vehicleID, shipmentIDs(shipments), plannedRoute(t), "", tourDate)
	require.NoError(t, err)
	for _, s := range shipments {
		require.NoError(t, s.AssignToTour(tr.ID(), tr.Number(), shipment.Note{At: tourDate}))
	}
	return tr
}

package postgres

import (
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/incidentrepo"
	"dispatch/internal/adapters/out/postgres/registry"
	"dispatch/internal/adapters/out/postgres/shipmentrepo"
	"dispatch/internal/adapters/out/postgres/tourrepo"
	"dispatch/internal/adapters/out/postgres/vehiclerepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, in creation order.
func Models() []any {
	return []any{
		&driverrepo.DriverDTO{},
		&vehiclerepo.VehicleDTO{},
		&tourrepo.TourDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.TrackingEntryDTO{},
		&registry.AllocationDTO{},
		&incidentrepo.IncidentDTO{},
	}
}

// Migrate creates or extends the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

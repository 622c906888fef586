// Package tourrepo persists delivery tours.
package tourrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tour"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// TourDTO is the tours table row. Shipment ids are kept as a text array in
// request order; the shipments table holds the authoritative back reference.
type TourDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number              string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	Date                time.Time       `gorm:"type:date;not null;index"`
	DriverID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	VehicleID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShipmentIDs         pq.StringArray  `gorm:"type:text[];not null"`
	Status              int             `gorm:"type:smallint;not null;index"`
	PlannedRoute        PlannedRouteDTO `gorm:"embedded;embeddedPrefix:planned_"`
	ActualRoute         ActualRouteDTO  `gorm:"embedded;embeddedPrefix:actual_"`
	DeliveriesCompleted int             `gorm:"not null;default:0"`
	DeliveriesFailed    int             `gorm:"not null;default:0"`
	Notes               string          `gorm:"type:text"`
	CancellationReason  string          `gorm:"type:text"`
	CreatedAt           time.Time       `gorm:"type:timestamptz;not null"`
	StartedAt           *time.Time      `gorm:"type:timestamptz"`
	CompletedAt         *time.Time      `gorm:"type:timestamptz"`
	Version             int             `gorm:"not null;default:0"`
}

func (TourDTO) TableName() string {
	return "tours"
}

type PlannedRouteDTO struct {
	StartLocation     string          `gorm:"type:varchar(255);not null"`
	EndLocation       string          `gorm:"type:varchar(255);not null"`
	EstimatedDistance decimal.Decimal `gorm:"type:numeric(10,3);not null"`
	EstimatedDuration int64           `gorm:"not null"` // seconds
}

// ActualRouteDTO is only filled once the tour is completed; Distance is NULL before that.
type ActualRouteDTO struct {
	StartTime *time.Time          `gorm:"type:timestamptz"`
	EndTime   *time.Time          `gorm:"type:timestamptz"`
	Distance  decimal.NullDecimal `gorm:"type:numeric(10,3)"`
}

func fromDomain(t *tour.Tour) TourDTO {
	ids := t.ShipmentIDs()
	shipmentIDs := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		shipmentIDs = append(shipmentIDs, id.String())
	}

	planned := t.PlannedRoute()
	dto := TourDTO{
		ID:          t.ID().Bytes(),
		Number:      t.Number(),
		Date:        t.Date(),
		DriverID:    t.DriverID().Bytes(),
		VehicleID:   t.VehicleID().Bytes(),
		ShipmentIDs: shipmentIDs,
		Status:      int(t.Status()),
		PlannedRoute: PlannedRouteDTO{
			StartLocation:     planned.StartLocation(),
			EndLocation:       planned.EndLocation(),
			EstimatedDistance: planned.EstimatedDistance().Kilometres(),
			EstimatedDuration: int64(planned.EstimatedDuration() / time.Second),
		},
		DeliveriesCompleted: t.DeliveriesCompleted(),
		DeliveriesFailed:    t.DeliveriesFailed(),
		Notes:               t.Notes(),
		CancellationReason:  t.CancellationReason(),
		CreatedAt:           t.CreatedAt(),
		StartedAt:           t.StartedAt(),
		CompletedAt:         t.CompletedAt(),
		Version:             t.Version(),
	}

	if actual := t.ActualRoute(); actual != nil {
		dto.ActualRoute = ActualRouteDTO{
			StartTime: actual.StartTime(),
			EndTime:   actual.EndTime(),
			Distance:  decimal.NullDecimal{Decimal: actual.ActualDistance().Kilometres(), Valid: true},
		}
	}

	return dto
}

func toDomain(dto TourDTO) (*tour.Tour, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}
	shipmentIDs, err := kernel.UUIDsFromStrings(dto.ShipmentIDs)
	if err != nil {
		return nil, err
	}

	estimated, err := kernel.NewDistance(dto.PlannedRoute.EstimatedDistance)
	if err != nil {
		return nil, err
	}
	planned, err := tour.NewPlannedRoute(
		dto.PlannedRoute.StartLocation,
		dto.PlannedRoute.EndLocation,
		estimated,
		time.Duration(dto.PlannedRoute.EstimatedDuration)*time.Second,
	)
	if err != nil {
		return nil, err
	}

	var actual *tour.ActualRoute
	if dto.ActualRoute.Distance.Valid {
		distance, distErr := kernel.NewDistance(dto.ActualRoute.Distance.Decimal)
		if distErr != nil {
			return nil, distErr
		}
		route, routeErr := tour.NewActualRoute(dto.ActualRoute.StartTime, dto.ActualRoute.EndTime, distance)
		if routeErr != nil {
			return nil, routeErr
		}
		actual = &route
	}

	return tour.RestoreTour(tour.RestoreParams{
		ID:                  id,
		Number:              dto.Number,
		Date:                dto.Date,
		DriverID:            driverID,
		VehicleID:           vehicleID,
		ShipmentIDs:         shipmentIDs,
		Status:              tour.Status(dto.Status),
		PlannedRoute:        planned,
		ActualRoute:         actual,
		DeliveriesCompleted: dto.DeliveriesCompleted,
		DeliveriesFailed:    dto.DeliveriesFailed,
		Notes:               dto.Notes,
		CancellationReason:  dto.CancellationReason,
		CreatedAt:           dto.CreatedAt,
		StartedAt:           dto.StartedAt,
		CompletedAt:         dto.CompletedAt,
		Version:             dto.Version,
	})
}

package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tour"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetTourQueryHandler struct {
	db *gorm.DB
}

func NewGetTourQueryHandler(db *gorm.DB) GetTourQueryHandler {
	return GetTourQueryHandler{db: db}
}

// Handle returns ErrObjectNotFound when no tour has the requested id.
func (h GetTourQueryHandler) Handle(ctx context.Context, query GetTourQuery) (GetTourQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTourQueryResponse{}, err
	}

	var (
		resp                  GetTourQueryResponse
		id, driverID, vehicle uuid.UUID
		shipmentIDs           pq.StringArray
		status                int
		durationSeconds       int64
		actualStart           *time.Time
		actualEnd             *time.Time
		actualDistance        decimal.NullDecimal
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			date,
			driver_id,
			vehicle_id,
			shipment_ids,
			status,
			planned_start_location,
			planned_end_location,
			planned_estimated_distance,
			planned_estimated_duration,
			actual_start_time,
			actual_end_time,
			actual_distance,
			deliveries_completed,
			deliveries_failed,
			notes,
			cancellation_reason,
			created_at,
			started_at,
			completed_at,
			version
		FROM tours
		WHERE id = ?
	`, query.ID().Bytes()).Row()

	err := row.Scan(
		&id,
		&resp.Number,
		&resp.Date,
		&driverID,
		&vehicle,
		&shipmentIDs,
		&status,
		&resp.PlannedRoute.StartLocation,
		&resp.PlannedRoute.EndLocation,
		&resp.PlannedRoute.EstimatedDistance,
		&durationSeconds,
		&actualStart,
		&actualEnd,
		&actualDistance,
		&resp.DeliveriesCompleted,
		&resp.DeliveriesFailed,
		&resp.Notes,
		&resp.CancellationReason,
		&resp.CreatedAt,
		&resp.StartedAt,
		&resp.CompletedAt,
		&resp.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetTourQueryResponse{}, errs.NewObjectNotFoundErrorWithCause("tour", query.ID().String(), err)
	}
	if err != nil {
		return GetTourQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetTourQueryResponse{}, err
	}
	if resp.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
		return GetTourQueryResponse{}, err
	}
	if resp.VehicleID, err = kernel.UUIDFromBytes(vehicle[:]); err != nil {
		return GetTourQueryResponse{}, err
	}
	if resp.ShipmentIDs, err = kernel.UUIDsFromStrings(shipmentIDs); err != nil {
		return GetTourQueryResponse{}, err
	}
	resp.Status = tour.Status(status)
	resp.PlannedRoute.EstimatedDuration = time.Duration(durationSeconds) * time.Second
	if actualDistance.Valid {
		resp.ActualRoute = &ActualRouteView{
			StartTime: actualStart,
			EndTime:   actualEnd,
			Distance:  actualDistance.Decimal,
		}
	}

	return resp, nil
}

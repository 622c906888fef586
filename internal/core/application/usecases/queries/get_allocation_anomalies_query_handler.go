package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"
	"dispatch/internal/core/domain/model/tour"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetAllocationAnomaliesQueryHandler struct {
	db *gorm.DB
}

func NewGetAllocationAnomaliesQueryHandler(db *gorm.DB) GetAllocationAnomaliesQueryHandler {
	return GetAllocationAnomaliesQueryHandler{db: db}
}

// Handle returns an empty slice when allocations, tours and resource statuses agree.
func (h GetAllocationAnomaliesQueryHandler) Handle(
	ctx context.Context,
	query GetAllocationAnomaliesQuery,
) ([]GetAllocationAnomaliesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	planned, running := int(tour.Planned), int(tour.InProgress)
	driverKind, vehicleKind := int(resource.Driver), int(resource.Vehicle)
	allocated := int(resource.Allocated)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT ?::text, a.kind, a.resource_id, a.tour_id
		FROM resource_allocations a
		LEFT JOIN tours t ON t.id = a.tour_id
		WHERE t.id IS NULL OR t.status NOT IN (?, ?)

		UNION ALL

		SELECT ?::text, ?::smallint, d.id, NULL::uuid
		FROM drivers d
		LEFT JOIN resource_allocations a ON a.kind = ? AND a.resource_id = d.id
		WHERE d.status = ? AND a.resource_id IS NULL

		UNION ALL

		SELECT ?::text, ?::smallint, v.id, NULL::uuid
		FROM vehicles v
		LEFT JOIN resource_allocations a ON a.kind = ? AND a.resource_id = v.id
		WHERE v.status = ? AND a.resource_id IS NULL

		UNION ALL

		SELECT ?::text, ?::smallint, t.driver_id, t.id
		FROM tours t
		LEFT JOIN resource_allocations a ON a.kind = ? AND a.resource_id = t.driver_id AND a.tour_id = t.id
		WHERE t.status IN (?, ?) AND a.tour_id IS NULL

		UNION ALL

		SELECT ?::text, ?::smallint, t.vehicle_id, t.id
		FROM tours t
		LEFT JOIN resource_allocations a ON a.kind = ? AND a.resource_id = t.vehicle_id AND a.tour_id = t.id
		WHERE t.status IN (?, ?) AND a.tour_id IS NULL
	`,
		string(AllocationWithoutActiveTour), planned, running,
		string(AllocatedWithoutAllocation), driverKind, driverKind, allocated,
		string(AllocatedWithoutAllocation), vehicleKind, vehicleKind, allocated,
		string(ActiveTourWithoutAllocation), driverKind, driverKind, planned, running,
		string(ActiveTourWithoutAllocation), vehicleKind, vehicleKind, planned, running,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	anomalies := make([]GetAllocationAnomaliesQueryResponse, 0)
	for rows.Next() {
		var (
			item       GetAllocationAnomaliesQueryResponse
			reason     string
			kind       int
			resourceID uuid.UUID
			tourID     uuid.NullUUID
		)
		if err = rows.Scan(&reason, &kind, &resourceID, &tourID); err != nil {
			return nil, err
		}
		item.Reason = AnomalyReason(reason)
		item.Kind = resource.Kind(kind)
		if item.ResourceID, err = kernel.UUIDFromBytes(resourceID[:]); err != nil {
			return nil, err
		}
		if tourID.Valid {
			ref, refErr := kernel.UUIDFromBytes(tourID.UUID[:])
			if refErr != nil {
				return nil, refErr
			}
			item.TourID = &ref
		}
		anomalies = append(anomalies, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return anomalies, nil
}

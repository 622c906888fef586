package queries

import (
	"context"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tour"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListToursQueryHandler struct {
	db *gorm.DB
}

func NewListToursQueryHandler(db *gorm.DB) ListToursQueryHandler {
	return ListToursQueryHandler{db: db}
}

// Handle returns tours ordered by date and number.
func (h ListToursQueryHandler) Handle(ctx context.Context, query ListToursQuery) ([]ListToursQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		conditions []string
		args       []any
	)
	if d := query.Date(); d != nil {
		conditions = append(conditions, "date = ?")
		args = append(args, d.Format("2006-01-02"))
	}
	if s := query.Status(); s != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, int(*s))
	}

	sqlText := `
		SELECT
			id,
			number,
			date,
			driver_id,
			vehicle_id,
			status,
			cardinality(shipment_ids)
		FROM tours`
	if len(conditions) > 0 {
		sqlText += "\n\t\tWHERE " + strings.Join(conditions, " AND ")
	}
	sqlText += "\n\t\tORDER BY date, number"

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tours := make([]ListToursQueryResponse, 0)
	for rows.Next() {
		var (
			item                    ListToursQueryResponse
			id, driverID, vehicleID uuid.UUID
			status                  int
		)
		if err = rows.Scan(&id, &item.Number, &item.Date, &driverID, &vehicleID, &status, &item.ShipmentCount); err != nil {
			return nil, err
		}
		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
			return nil, err
		}
		if item.VehicleID, err = kernel.UUIDFromBytes(vehicleID[:]); err != nil {
			return nil, err
		}
		item.Status = tour.Status(status)
		tours = append(tours, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tours, nil
}

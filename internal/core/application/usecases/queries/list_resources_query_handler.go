package queries

import (
	"context"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListResourcesQueryHandler struct {
	db *gorm.DB
}

func NewListResourcesQueryHandler(db *gorm.DB) ListResourcesQueryHandler {
	return ListResourcesQueryHandler{db: db}
}

func (h ListResourcesQueryHandler) Handle(
	ctx context.Context,
	query ListResourcesQuery,
) ([]ListResourcesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := `
		SELECT id, name, license_number, NULL::numeric, status, is_active, version
		FROM drivers`
	order := "name"
	if query.kind == resource.Vehicle {
		sqlText = `
		SELECT id, model, plate_number, mileage, status, is_active, version
		FROM vehicles`
		order = "plate_number"
	}

	var (
		conditions []string
		args       []any
	)
	if query.status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, int(*query.status))
	}
	if query.activeOnly {
		conditions = append(conditions, "is_active")
	}
	if len(conditions) > 0 {
		sqlText += "\n\t\tWHERE " + strings.Join(conditions, " AND ")
	}
	sqlText += "\n\t\tORDER BY " + order

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resources := make([]ListResourcesQueryResponse, 0)
	for rows.Next() {
		var (
			item    ListResourcesQueryResponse
			id      uuid.UUID
			mileage decimal.NullDecimal
			status  int
		)
		if err = rows.Scan(&id, &item.Name, &item.Identifier, &mileage, &status, &item.IsActive, &item.Version); err != nil {
			return nil, err
		}
		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		item.Kind = query.kind
		item.Status = resource.Status(status)
		if mileage.Valid {
			m := mileage.Decimal
			item.Mileage = &m
		}
		resources = append(resources, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return resources, nil
}

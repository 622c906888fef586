package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetShipmentTransitionsQueryIsNotConstructed = errors.New(
	"GetShipmentTransitionsQuery must be created via NewGetShipmentTransitionsQuery constructor",
)

// GetShipmentTransitionsQuery returns the statuses a manual update may select
// from, so clients never hardcode the edge table.
type GetShipmentTransitionsQuery struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetShipmentTransitionsQuery(id kernel.UUID) (GetShipmentTransitionsQuery, error) {
	if err := id.Validate(); err != nil {
		return GetShipmentTransitionsQuery{}, err
	}
	return GetShipmentTransitionsQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentTransitionsQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentTransitionsQueryIsNotConstructed)
}

type GetShipmentTransitionsQueryResponse struct {
	Current shipment.Status
	Allowed []shipment.Status
}

type GetShipmentTransitionsQueryHandler struct {
	db *gorm.DB
}

func NewGetShipmentTransitionsQueryHandler(db *gorm.DB) GetShipmentTransitionsQueryHandler {
	return GetShipmentTransitionsQueryHandler{db: db}
}

func (h GetShipmentTransitionsQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentTransitionsQuery,
) (GetShipmentTransitionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentTransitionsQueryResponse{}, err
	}

	var status int
	err := h.db.WithContext(ctx).
		Raw(`SELECT status FROM shipments WHERE id = ?`, query.id.Bytes()).
		Row().
		Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return GetShipmentTransitionsQueryResponse{}, errs.NewObjectNotFoundErrorWithCause("shipment", query.id.String(), err)
	}
	if err != nil {
		return GetShipmentTransitionsQueryResponse{}, err
	}

	current := shipment.Status(status)
	return GetShipmentTransitionsQueryResponse{
		Current: current,
		Allowed: current.AllowedTransitions(),
	}, nil
}

// Package queries contains read operations for retrieving system state.
// Queries bypass the aggregates and read straight from the tables, returning
// read models shaped for the HTTP layer and the allocation audit.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tour"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetTourQueryIsNotConstructed = errors.New("GetTourQuery must be created via NewGetTourQuery constructor")

// GetTourQuery loads the full read model of one tour.
//
// Example:
//
//	query, err := NewGetTourQuery(tourID)
//	if err != nil {
//	    return err
//	}
//	view, err := NewGetTourQueryHandler(db).Handle(ctx, query)
type GetTourQuery struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetTourQuery(id kernel.UUID) (GetTourQuery, error) {
	if err := id.Validate(); err != nil {
		return GetTourQuery{}, err
	}
	return GetTourQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTourQuery) Validate() error {
	return q.guard.Validate(ErrGetTourQueryIsNotConstructed)
}

func (q GetTourQuery) ID() kernel.UUID {
	return q.id
}

// GetTourQueryResponse is the tour read model.
type GetTourQueryResponse struct {
	ID                  kernel.UUID
	Number              string
	Date                time.Time
	DriverID            kernel.UUID
	VehicleID           kernel.UUID
	ShipmentIDs         []kernel.UUID
	Status              tour.Status
	PlannedRoute        PlannedRouteView
	ActualRoute         *ActualRouteView
	DeliveriesCompleted int
	DeliveriesFailed    int
	Notes               string
	CancellationReason  string
	CreatedAt           time.Time
	StartedAt           *time.Time
	CompletedAt         *time.Time
	Version             int
}

type PlannedRouteView struct {
	StartLocation     string
	EndLocation       string
	EstimatedDistance decimal.Decimal
	EstimatedDuration time.Duration
}

// ActualRouteView is present only for completed tours.
type ActualRouteView struct {
	StartTime *time.Time
	EndTime   *time.Time
	Distance  decimal.Decimal
}

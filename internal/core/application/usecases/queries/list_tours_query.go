package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tour"
	"dispatch/internal/pkg/guard"
)

var ErrListToursQueryIsNotConstructed = errors.New("ListToursQuery must be created via NewListToursQuery constructor")

// ListToursQuery lists tours, optionally narrowed to one calendar day and one status.
type ListToursQuery struct {
	date   *time.Time
	status *tour.Status
	guard  guard.ConstructorGuard
}

// NewListToursQuery accepts nil filters. A date keeps only its calendar day.
func NewListToursQuery(date *time.Time, status *tour.Status) (ListToursQuery, error) {
	q := ListToursQuery{guard: guard.NewConstructorGuard()}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListToursQuery{}, err
		}
		s := *status
		q.status = &s
	}
	if date != nil {
		d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		q.date = &d
	}
	return q, nil
}

func (q ListToursQuery) Validate() error {
	return q.guard.Validate(ErrListToursQueryIsNotConstructed)
}

func (q ListToursQuery) Date() *time.Time     { return q.date }
func (q ListToursQuery) Status() *tour.Status { return q.status }

// ListToursQueryResponse is one row of the tour overview.
type ListToursQueryResponse struct {
	ID            kernel.UUID
	Number        string
	Date          time.Time
	DriverID      kernel.UUID
	VehicleID     kernel.UUID
	Status        tour.Status
	ShipmentCount int
}

package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListResourcesQueryIsNotConstructed = errors.New(
	"ListResourcesQuery must be created via NewListResourcesQuery constructor",
)

// ListResourcesQuery lists drivers or vehicles, optionally filtered by status.
// Inactive resources are included unless activeOnly is set.
type ListResourcesQuery struct {
	kind       resource.Kind
	status     *resource.Status
	activeOnly bool
	guard      guard.ConstructorGuard
}

func NewListResourcesQuery(kind resource.Kind, status *resource.Status, activeOnly bool) (ListResourcesQuery, error) {
	if err := kind.Validate(); err != nil {
		return ListResourcesQuery{}, err
	}
	q := ListResourcesQuery{kind: kind, activeOnly: activeOnly, guard: guard.NewConstructorGuard()}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListResourcesQuery{}, err
		}
		s := *status
		q.status = &s
	}
	return q, nil
}

func (q ListResourcesQuery) Validate() error {
	return q.guard.Validate(ErrListResourcesQueryIsNotConstructed)
}

func (q ListResourcesQuery) Kind() resource.Kind { return q.kind }

// ListResourcesQueryResponse describes one driver or vehicle. For drivers Name
// and Identifier hold the name and license number; for vehicles the model and
// plate number. Mileage is set for vehicles only.
type ListResourcesQueryResponse struct {
	ID         kernel.UUID
	Kind       resource.Kind
	Name       string
	Identifier string
	Status     resource.Status
	IsActive   bool
	Mileage    *decimal.Decimal
	Version    int
}

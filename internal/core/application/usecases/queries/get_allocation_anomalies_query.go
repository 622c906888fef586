package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"
	"dispatch/internal/pkg/guard"
)

var ErrGetAllocationAnomaliesQueryIsNotConstructed = errors.New(
	"GetAllocationAnomaliesQuery must be created via NewGetAllocationAnomaliesQuery constructor",
)

// AnomalyReason classifies a break of the "one resource, at most one active tour" rule.
type AnomalyReason string

const (
	// AllocationWithoutActiveTour is an allocation row whose tour is gone or already terminal.
	AllocationWithoutActiveTour AnomalyReason = "allocation_without_active_tour"
	// AllocatedWithoutAllocation is a resource flagged allocated that no allocation row backs.
	AllocatedWithoutAllocation AnomalyReason = "allocated_without_allocation"
	// ActiveTourWithoutAllocation is a planned or running tour missing the allocation of its driver or vehicle.
	ActiveTourWithoutAllocation AnomalyReason = "active_tour_without_allocation"
)

// GetAllocationAnomaliesQuery cross-checks the allocation table against tours,
// drivers and vehicles. It never changes anything.
type GetAllocationAnomaliesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAllocationAnomaliesQuery() GetAllocationAnomaliesQuery {
	return GetAllocationAnomaliesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAllocationAnomaliesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllocationAnomaliesQueryIsNotConstructed)
}

type GetAllocationAnomaliesQueryResponse struct {
	Reason     AnomalyReason
	Kind       resource.Kind
	ResourceID kernel.UUID
	// TourID is nil for AllocatedWithoutAllocation.
	TourID *kernel.UUID
}

// Package ports defines the persistence contracts of the dispatch core.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"
	"dispatch/internal/core/domain/model/vehicle"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists operator changes (availability, active flag). The write is
	// conditional on the aggregate's version; a stale aggregate yields ErrVersionIsInvalid.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver or returns ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)
}

// VehicleRepository defines the persistence contract for vehicle aggregates.
type VehicleRepository interface {
	// Add persists a new vehicle.
	Add(ctx context.Context, aggregate *vehicle.Vehicle) error

	// Update persists mileage and operator changes under the same version rule as drivers.
	Update(ctx context.Context, aggregate *vehicle.Vehicle) error

	// Get retrieves a vehicle or returns ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)
}

// ResourceRegistry is the only writer of the Allocated status. It keeps one allocation
// row per resource and flips the resource status with compare-and-set semantics.
type ResourceRegistry interface {
	// TryAllocate moves claim.ResourceID from claim.Expected to claim.New and records
	// claim.TourID as its holder. It never waits: a resource in any other status, an
	// inactive resource or an existing allocation yields ErrConflict; a missing resource
	// yields ErrObjectNotFound.
	TryAllocate(ctx context.Context, claim resource.Claim) error

	// Release drops the allocation held by tourID and sets the resource to newStatus.
	// Releasing a resource the tour does not hold is a no-op.
	Release(ctx context.Context, kind resource.Kind, resourceID kernel.UUID, tourID kernel.UUID, newStatus resource.Status) error

	// Allocations lists every allocation row.
	Allocations(ctx context.Context) ([]resource.Allocation, error)
}

// ResourceLocker serializes dispatch attempts on the same resources across instances.
// It only shortens contention; the registry stays the source of truth.
type ResourceLocker interface {
	// Lock obtains every key or none. A key held elsewhere yields ErrConflict.
	Lock(ctx context.Context, keys ...string) (unlock func(context.Context) error, err error)
}

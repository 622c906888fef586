// Package registry is the PostgreSQL resource registry: the only writer of the
// allocated status of drivers and vehicles.
package registry

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"

	"github.com/google/uuid"
)

// AllocationDTO binds one resource to one tour. The primary key allows a single
// allocation per resource.
type AllocationDTO struct {
	Kind        int       `gorm:"type:smallint;primaryKey;autoIncrement:false"`
	ResourceID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	TourID      uuid.UUID `gorm:"type:uuid;not null;index"`
	AllocatedAt time.Time `gorm:"type:timestamptz;not null"`
}

func (AllocationDTO) TableName() string {
	return "resource_allocations"
}

func toDomain(dto AllocationDTO) (resource.Allocation, error) {
	resourceID, err := kernel.UUIDFromBytes(dto.ResourceID[:])
	if err != nil {
		return resource.Allocation{}, err
	}
	tourID, err := kernel.UUIDFromBytes(dto.TourID[:])
	if err != nil {
		return resource.Allocation{}, err
	}
	return resource.NewAllocation(resource.Kind(dto.Kind), resourceID, tourID, dto.AllocatedAt)
}

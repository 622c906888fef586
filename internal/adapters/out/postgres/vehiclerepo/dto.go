// Package vehiclerepo persists vehicle aggregates.
package vehiclerepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"
	"dispatch/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VehicleDTO is the vehicles table row.
type VehicleDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PlateNumber string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	Model       string          `gorm:"type:varchar(255)"`
	Mileage     decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	Status      int             `gorm:"type:smallint;not null;index"`
	IsActive    bool            `gorm:"not null;default:true"`
	Version     int             `gorm:"not null;default:0"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

func fromDomain(v *vehicle.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:          v.ID().Bytes(),
		PlateNumber: v.PlateNumber(),
		Model:       v.Model(),
		Mileage:     v.Mileage().Kilometres(),
		Status:      int(v.Status()),
		IsActive:    v.IsActive(),
		Version:     v.Version(),
	}
}

func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	mileage, err := kernel.NewDistance(dto.Mileage)
	if err != nil {
		return nil, err
	}
	return vehicle.RestoreVehicle(id, dto.PlateNumber, dto.Model, mileage, resource.Status(dto.Status), dto.IsActive, dto.Version)
}

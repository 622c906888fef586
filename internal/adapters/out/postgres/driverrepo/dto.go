// Package driverrepo persists driver aggregates.
package driverrepo

import (
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"

	"github.com/google/uuid"
)

// DriverDTO is the drivers table row. Status is written here by the registry as well,
// which also bumps Version.
type DriverDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"type:varchar(255);not null"`
	LicenseNumber string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Status        int       `gorm:"type:smallint;not null;index"`
	IsActive      bool      `gorm:"not null;default:true"`
	Version       int       `gorm:"not null;default:0"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(d *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:            d.ID().Bytes(),
		Name:          d.Name(),
		LicenseNumber: d.LicenseNumber(),
		Status:        int(d.Status()),
		IsActive:      d.IsActive(),
		Version:       d.Version(),
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return driver.RestoreDriver(id, dto.Name, dto.LicenseNumber, resource.Status(dto.Status), dto.IsActive, dto.Version)
}

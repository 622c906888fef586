// Package incidentrepo persists incidents.
package incidentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/incident"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type IncidentDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Type        int        `gorm:"type:smallint;not null"`
	Status      int        `gorm:"type:smallint;not null;index"`
	Description string     `gorm:"type:text;not null"`
	ShipmentID  *uuid.UUID `gorm:"type:uuid;index"`
	TourID      *uuid.UUID `gorm:"type:uuid;index"`
	VehicleID   *uuid.UUID `gorm:"type:uuid"`
	DriverID    *uuid.UUID `gorm:"type:uuid"`
	ReportedBy  string     `gorm:"type:varchar(255);not null"`
	ReportedAt  time.Time  `gorm:"type:timestamptz;not null"`
	ResolvedAt  *time.Time `gorm:"type:timestamptz"`
	ResolvedBy  string     `gorm:"type:varchar(255)"`
	Resolution  string     `gorm:"type:text"`
	Version     int        `gorm:"not null;default:0"`
}

func (IncidentDTO) TableName() string {
	return "incidents"
}

func fromDomain(i *incident.Incident) IncidentDTO {
	refs := i.Refs()
	return IncidentDTO{
		ID:          i.ID().Bytes(),
		Type:        int(i.Type()),
		Status:      int(i.Status()),
		Description: i.Description(),
		ShipmentID:  rawID(refs.ShipmentID),
		TourID:      rawID(refs.TourID),
		VehicleID:   rawID(refs.VehicleID),
		DriverID:    rawID(refs.DriverID),
		ReportedBy:  i.ReportedBy(),
		ReportedAt:  i.ReportedAt(),
		ResolvedAt:  i.ResolvedAt(),
		ResolvedBy:  i.ResolvedBy(),
		Resolution:  i.Resolution(),
		Version:     i.Version(),
	}
}

func toDomain(dto IncidentDTO) (*incident.Incident, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var refs incident.Refs
	for _, ref := range []struct {
		raw *uuid.UUID
		dst **kernel.UUID
	}{
		{dto.ShipmentID, &refs.ShipmentID},
		{dto.TourID, &refs.TourID},
		{dto.VehicleID, &refs.VehicleID},
		{dto.DriverID, &refs.DriverID},
	} {
		if ref.raw == nil {
			continue
		}
		refID, refErr := kernel.UUIDFromBytes(ref.raw[:])
		if refErr != nil {
			return nil, refErr
		}
		*ref.dst = &refID
	}

	return incident.RestoreIncident(incident.RestoreParams{
		ID:          id,
		Type:        incident.Type(dto.Type),
		Status:      incident.Status(dto.Status),
		Description: dto.Description,
		Refs:        refs,
		ReportedBy:  dto.ReportedBy,
		ReportedAt:  dto.ReportedAt,
		ResolvedAt:  dto.ResolvedAt,
		ResolvedBy:  dto.ResolvedBy,
		Resolution:  dto.Resolution,
		Version:     dto.Version,
	})
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

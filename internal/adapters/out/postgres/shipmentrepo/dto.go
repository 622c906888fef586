// Package shipmentrepo persists shipment aggregates and their append-only tracking history.
package shipmentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO is the shipments table row. History lives in tracking_entries.
type ShipmentDTO struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey"`
	TrackingNumber     string             `gorm:"type:varchar(64);not null;uniqueIndex"`
	RecipientName      string             `gorm:"type:varchar(255);not null"`
	Destination        string             `gorm:"type:text;not null"`
	Weight             decimal.Decimal    `gorm:"type:numeric(10,3);not null"`
	Status             int                `gorm:"type:smallint;not null;index"`
	TourID             *uuid.UUID         `gorm:"type:uuid;index"`
	IsInvoiced         bool               `gorm:"not null;default:false"`
	ActualDeliveryDate *time.Time         `gorm:"type:timestamptz"`
	Version            int                `gorm:"not null;default:0"`
	History            []TrackingEntryDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// TrackingEntryDTO is one history row. (ShipmentID, Seq) is the key, so re-inserting a
// stored entry is a no-op and stored entries are never rewritten.
type TrackingEntryDTO struct {
	ShipmentID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq         int       `gorm:"primaryKey;autoIncrement:false"`
	Timestamp   time.Time `gorm:"type:timestamptz;not null"`
	Status      int       `gorm:"type:smallint;not null"`
	Event       int       `gorm:"type:smallint;not null"`
	Location    string    `gorm:"type:varchar(255)"`
	Description string    `gorm:"type:text"`
	Actor       string    `gorm:"type:varchar(255)"`
}

func (TrackingEntryDTO) TableName() string {
	return "tracking_entries"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	id := s.ID().Bytes()

	var tourID *uuid.UUID
	if t := s.TourID(); t != nil {
		raw := t.Bytes()
		tourID = &raw
	}

	history := s.History()
	entries := make([]TrackingEntryDTO, 0, len(history))
	for i, e := range history {
		entries = append(entries, TrackingEntryDTO{
			ShipmentID:  id,
			Seq:         i,
			Timestamp:   e.Timestamp(),
			Status:      int(e.Status()),
			Event:       int(e.Event()),
			Location:    e.Location(),
			Description: e.Description(),
			Actor:       e.Actor(),
		})
	}

	return ShipmentDTO{
		ID:                 id,
		TrackingNumber:     s.TrackingNumber(),
		RecipientName:      s.RecipientName(),
		Destination:        s.Destination(),
		Weight:             s.Weight(),
		Status:             int(s.Status()),
		TourID:             tourID,
		IsInvoiced:         s.IsInvoiced(),
		ActualDeliveryDate: s.ActualDeliveryDate(),
		Version:            s.Version(),
		History:            entries,
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var tourID *kernel.UUID
	if dto.TourID != nil {
		tID, tourErr := kernel.UUIDFromBytes((*dto.TourID)[:])
		if tourErr != nil {
			return nil, tourErr
		}
		tourID = &tID
	}

	history := make([]shipment.TrackingEntry, 0, len(dto.History))
	for _, e := range dto.History {
		entry, entryErr := shipment.NewTrackingEntry(
			shipment.Status(e.Status),
			shipment.Event(e.Event),
			shipment.Note{At: e.Timestamp, Location: e.Location, Description: e.Description, Actor: e.Actor},
		)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return shipment.RestoreShipment(
		id,
		dto.TrackingNumber,
		dto.RecipientName,
		dto.Destination,
		dto.Weight,
		shipment.Status(dto.Status),
		history,
		tourID,
		dto.IsInvoiced,
		dto.ActualDeliveryDate,
		dto.Version,
	)
}

package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates,
// including their tracking history.
type ShipmentRepository interface {
	// Add persists a new shipment with its history. A duplicate tracking number yields ErrConflict.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists the shipment and appends history entries not yet stored.
	// Stored entries are never rewritten. A stale aggregate yields ErrVersionIsInvalid.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment with its full history.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetForUpdate retrieves and row-locks a shipment until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetEligibleForTour row-locks and returns the subset of ids that have no tour,
	// are not invoiced and are pending, picked_up or in_transit.
	GetEligibleForTour(ctx context.Context, ids []kernel.UUID) ([]*shipment.Shipment, error)

	// GetByIDsForUpdate row-locks and returns the shipments among ids that exist.
	GetByIDsForUpdate(ctx context.Context, ids []kernel.UUID) ([]*shipment.Shipment, error)

	// GetByTour row-locks and returns every shipment referencing tourID.
	GetByTour(ctx context.Context, tourID kernel.UUID) ([]*shipment.Shipment, error)

	// Delete removes a shipment and its history.
	Delete(ctx context.Context, id kernel.UUID) error
}

package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tour"
)

// TourRepository defines the persistence contract for tour aggregates.
type TourRepository interface {
	// Add persists a new tour.
	Add(ctx context.Context, aggregate *tour.Tour) error

	// Update persists a tour conditionally on its version.
	Update(ctx context.Context, aggregate *tour.Tour) error

	// Get retrieves a tour or returns ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*tour.Tour, error)

	// GetForUpdate retrieves and row-locks a tour so that concurrent lifecycle
	// operations on it run one after the other.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*tour.Tour, error)

	// Delete removes a tour record.
	Delete(ctx context.Context, id kernel.UUID) error
}

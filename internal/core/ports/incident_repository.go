package ports

import (
	"context"

	"dispatch/internal/core/domain/model/incident"
	"dispatch/internal/core/domain/model/kernel"
)

// IncidentRepository defines the persistence contract for incidents.
type IncidentRepository interface {
	Add(ctx context.Context, aggregate *incident.Incident) error
	Update(ctx context.Context, aggregate *incident.Incident) error
	Get(ctx context.Context, id kernel.UUID) (*incident.Incident, error)
}

package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/incident"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreateIncidentCommandIsNotConstructed = errors.New(
	"CreateIncidentCommand must be created via NewCreateIncidentCommand constructor",
)

// CreateIncidentCommand reports an incident against optional shipment, tour, vehicle
// and driver references.
type CreateIncidentCommand struct {
	incidentID  kernel.UUID
	typ         incident.Type
	description string
	refs        incident.Refs
	reporterID  string

	guard guard.ConstructorGuard
}

func NewCreateIncidentCommand(
	incidentID kernel.UUID,
	typ incident.Type,
	description string,
	refs incident.Refs,
	reporterID string,
) (CreateIncidentCommand, error) {
	if err := errors.Join(incidentID.Validate(), typ.Validate(), refs.Validate()); err != nil {
		return CreateIncidentCommand{}, err
	}
	if reporterID == "" {
		return CreateIncidentCommand{}, incident.ErrReporterIsRequired
	}

	return CreateIncidentCommand{
		incidentID:  incidentID,
		typ:         typ,
		description: description,
		refs:        refs,
		reporterID:  reporterID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateIncidentCommand) Validate() error {
	return c.guard.Validate(ErrCreateIncidentCommandIsNotConstructed)
}

func (c CreateIncidentCommand) IncidentID() kernel.UUID { return c.incidentID }
func (c CreateIncidentCommand) Type() incident.Type     { return c.typ }
func (c CreateIncidentCommand) Description() string     { return c.description }
func (c CreateIncidentCommand) Refs() incident.Refs     { return c.refs }
func (c CreateIncidentCommand) ReporterID() string      { return c.reporterID }

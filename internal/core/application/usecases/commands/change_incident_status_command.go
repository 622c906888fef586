package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/incident"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrChangeIncidentStatusCommandIsNotConstructed = errors.New(
	"ChangeIncidentStatusCommand must be created via NewChangeIncidentStatusCommand constructor",
)

type ChangeIncidentStatusCommand struct {
	incidentID kernel.UUID
	status     incident.Status
	guard      guard.ConstructorGuard
}

func NewChangeIncidentStatusCommand(incidentID kernel.UUID, status incident.Status) (ChangeIncidentStatusCommand, error) {
	if err := errors.Join(incidentID.Validate(), status.Validate()); err != nil {
		return ChangeIncidentStatusCommand{}, err
	}
	return ChangeIncidentStatusCommand{incidentID: incidentID, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (c ChangeIncidentStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeIncidentStatusCommandIsNotConstructed)
}

func (c ChangeIncidentStatusCommand) IncidentID() kernel.UUID { return c.incidentID }
func (c ChangeIncidentStatusCommand) Status() incident.Status { return c.status }

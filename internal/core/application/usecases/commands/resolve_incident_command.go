package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/incident"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrResolveIncidentCommandIsNotConstructed = errors.New(
	"ResolveIncidentCommand must be created via NewResolveIncidentCommand constructor",
)

type ResolveIncidentCommand struct {
	incidentID kernel.UUID
	resolverID string
	resolution string
	guard      guard.ConstructorGuard
}

func NewResolveIncidentCommand(incidentID kernel.UUID, resolverID string, resolution string) (ResolveIncidentCommand, error) {
	var errList []error
	errList = append(errList, incidentID.Validate())
	if strings.TrimSpace(resolverID) == "" {
		errList = append(errList, incident.ErrResolverIsRequired)
	}
	if strings.TrimSpace(resolution) == "" {
		errList = append(errList, incident.ErrResolutionIsRequired)
	}
	if err := errors.Join(errList...); err != nil {
		return ResolveIncidentCommand{}, err
	}

	return ResolveIncidentCommand{
		incidentID: incidentID,
		resolverID: resolverID,
		resolution: resolution,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ResolveIncidentCommand) Validate() error {
	return c.guard.Validate(ErrResolveIncidentCommandIsNotConstructed)
}

func (c ResolveIncidentCommand) IncidentID() kernel.UUID { return c.incidentID }
func (c ResolveIncidentCommand) ResolverID() string      { return c.resolverID }
func (c ResolveIncidentCommand) Resolution() string      { return c.resolution }

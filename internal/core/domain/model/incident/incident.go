package incident

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrDescriptionIsRequired    = errs.NewValueIsRequiredError("description")
	ErrReporterIsRequired       = errs.NewValueIsRequiredError("reportedBy")
	ErrResolverIsRequired       = errs.NewValueIsRequiredError("resolvedBy")
	ErrResolutionIsRequired     = errs.NewValueIsRequiredError("resolution")
	ErrIncidentIsNotConstructed = errors.New("Incident must be created via NewIncident constructor")
)

// Refs are the optional entities an incident is reported against.
type Refs struct {
	ShipmentID *kernel.UUID
	TourID     *kernel.UUID
	VehicleID  *kernel.UUID
	DriverID   *kernel.UUID
}

func (r Refs) Validate() error {
	var errList []error
	for _, id := range []*kernel.UUID{r.ShipmentID, r.TourID, r.VehicleID, r.DriverID} {
		if id != nil {
			errList = append(errList, id.Validate())
		}
	}
	return errors.Join(errList...)
}

// Incident is an operational event reported against shipments, tours or resources.
type Incident struct {
	id          kernel.UUID
	typ         Type
	status      Status
	description string
	refs        Refs
	reportedBy  string
	reportedAt  time.Time
	resolvedAt  *time.Time
	resolvedBy  string
	resolution  string
	version     int
	guard       guard.ConstructorGuard
}

func NewIncident(id kernel.UUID, typ Type, description string, refs Refs, reportedBy string, reportedAt time.Time) (*Incident, error) {
	i := &Incident{
		status:     Reported,
		reportedAt: reportedAt.UTC(),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		i.setID(id),
		i.setType(typ),
		i.setDescription(description),
		i.setRefs(refs),
		i.setReportedBy(reportedBy),
	); err != nil {
		return nil, err
	}

	return i, nil
}

// RestoreParams carries the persisted state of an incident.
type RestoreParams struct {
	ID          kernel.UUID
	Type        Type
	Status      Status
	Description string
	Refs        Refs
	ReportedBy  string
	ReportedAt  time.Time
	ResolvedAt  *time.Time
	ResolvedBy  string
	Resolution  string
	Version     int
}

func RestoreIncident(p RestoreParams) (*Incident, error) {
	if err := p.Status.Validate(); err != nil {
		return nil, err
	}

	i := &Incident{
		status:     p.Status,
		reportedAt: p.ReportedAt,
		resolvedAt: p.ResolvedAt,
		resolvedBy: p.ResolvedBy,
		resolution: p.Resolution,
		version:    p.Version,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		i.setID(p.ID),
		i.setType(p.Type),
		i.setDescription(p.Description),
		i.setRefs(p.Refs),
		i.setReportedBy(p.ReportedBy),
	); err != nil {
		return nil, err
	}

	return i, nil
}

func (i *Incident) Validate() error {
	if i == nil {
		return ErrIncidentIsNotConstructed
	}
	return i.guard.Validate(ErrIncidentIsNotConstructed)
}

func (i *Incident) ID() kernel.UUID        { return i.id }
func (i *Incident) Type() Type             { return i.typ }
func (i *Incident) Status() Status         { return i.status }
func (i *Incident) Description() string    { return i.description }
func (i *Incident) Refs() Refs             { return i.refs }
func (i *Incident) ReportedBy() string     { return i.reportedBy }
func (i *Incident) ReportedAt() time.Time  { return i.reportedAt }
func (i *Incident) ResolvedAt() *time.Time { return i.resolvedAt }
func (i *Incident) ResolvedBy() string     { return i.resolvedBy }
func (i *Incident) Resolution() string     { return i.resolution }
func (i *Incident) Version() int           { return i.version }

// BumpVersion is called by the repository after a successful write.
func (i *Incident) BumpVersion() {
	i.version++
}

// ChangeStatus moves the incident along its workflow. Resolution goes through Resolve
// so that resolvedAt and resolvedBy are always set together.
func (i *Incident) ChangeStatus(next Status) error {
	if next == Resolved {
		return errs.NewValueIsInvalidErrorWithCause("status", errors.New("use resolve to mark an incident resolved"))
	}
	if err := i.status.CanTransitionTo(next); err != nil {
		return err
	}
	i.status = next
	return nil
}

// Resolve records who resolved the incident, when and how.
func (i *Incident) Resolve(resolvedBy string, resolution string, at time.Time) error {
	if err := i.status.CanTransitionTo(Resolved); err != nil {
		return errs.NewConflictErrorWithCause("incident "+i.id.String(), "is "+i.status.String(), err)
	}
	if strings.TrimSpace(resolvedBy) == "" {
		return ErrResolverIsRequired
	}
	if strings.TrimSpace(resolution) == "" {
		return ErrResolutionIsRequired
	}

	resolvedAt := at.UTC()
	i.status = Resolved
	i.resolvedAt = &resolvedAt
	i.resolvedBy = resolvedBy
	i.resolution = resolution
	return nil
}

func (i *Incident) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Incident) setType(typ Type) error {
	if err := typ.Validate(); err != nil {
		return err
	}
	i.typ = typ
	return nil
}

func (i *Incident) setDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrDescriptionIsRequired
	}
	i.description = description
	return nil
}

func (i *Incident) setRefs(refs Refs) error {
	if err := refs.Validate(); err != nil {
		return err
	}
	i.refs = refs
	return nil
}

func (i *Incident) setReportedBy(reportedBy string) error {
	if strings.TrimSpace(reportedBy) == "" {
		return ErrReporterIsRequired
	}
	i.reportedBy = reportedBy
	return nil
}

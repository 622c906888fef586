package tour

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrShipmentsAreRequired is returned when a tour is planned without shipments.
	ErrShipmentsAreRequired = errs.NewValueIsRequiredError("shipmentIds")
	// ErrDateIsRequired is returned when a tour has no date.
	ErrDateIsRequired = errs.NewValueIsRequiredError("date")
	// ErrTourIsNotConstructed is returned when using a Tour that was not created by NewTour or RestoreTour.
	ErrTourIsNotConstructed = errors.New("Tour must be created via NewTour constructor")
)

// Tour is the aggregate root of dispatch: one driver, one vehicle and a set of
// shipments for one day's deliveries.
//
// Tour follows these invariants:
//   - Shipment membership is non-empty, unique and mutable only while planned
//   - Status follows Planned -> InProgress -> Completed or Planned -> Cancelled
//   - Actual route and delivery counters are set only on completion
//   - An in-progress tour cannot be deleted
type Tour struct {
	id                  kernel.UUID
	number              string
	date                time.Time
	driverID            kernel.UUID
	vehicleID           kernel.UUID
	shipmentIDs         []kernel.UUID
	status              Status
	plannedRoute        PlannedRoute
	actualRoute         *ActualRoute
	deliveriesCompleted int
	deliveriesFailed    int
	notes               string
	cancellationReason  string
	createdAt           time.Time
	startedAt           *time.Time
	completedAt         *time.Time
	version             int
	guard               guard.ConstructorGuard
}

// NewTour plans a tour. The number is derived from the date and the id,
// e.g. "TR-20250314-1F3A9C2B".
func NewTour(
	id kernel.UUID,
	date time.Time,
	driverID kernel.UUID,
	vehicleID kernel.UUID,
	shipmentIDs []kernel.UUID,
	plannedRoute PlannedRoute,
	notes string,
	createdAt time.Time,
) (*Tour, error) {
	t := &Tour{
		status:    Planned,
		notes:     notes,
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setDate(date),
		t.setDriverID(driverID),
		t.setVehicleID(vehicleID),
		t.setShipmentIDs(shipmentIDs),
		t.setPlannedRoute(plannedRoute),
	); err != nil {
		return nil, err
	}
	t.number = Number(t.date, id)

	return t, nil
}

// RestoreParams carries the persisted state of a tour.
type RestoreParams struct {
	ID                  kernel.UUID
	Number              string
	Date                time.Time
	DriverID            kernel.UUID
	VehicleID           kernel.UUID
	ShipmentIDs         []kernel.UUID
	Status              Status
	PlannedRoute        PlannedRoute
	ActualRoute         *ActualRoute
	DeliveriesCompleted int
	DeliveriesFailed    int
	Notes               string
	CancellationReason  string
	CreatedAt           time.Time
	StartedAt           *time.Time
	CompletedAt         *time.Time
	Version             int
}

func RestoreTour(p RestoreParams) (*Tour, error) {
	if p.Number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}
	if err := p.Status.Validate(); err != nil {
		return nil, err
	}

	t := &Tour{
		number:              p.Number,
		status:              p.Status,
		actualRoute:         p.ActualRoute,
		deliveriesCompleted: p.DeliveriesCompleted,
		deliveriesFailed:    p.DeliveriesFailed,
		notes:               p.Notes,
		cancellationReason:  p.CancellationReason,
		createdAt:           p.CreatedAt,
		startedAt:           p.StartedAt,
		completedAt:         p.CompletedAt,
		version:             p.Version,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(p.ID),
		t.setDate(p.Date),
		t.setDriverID(p.DriverID),
		t.setVehicleID(p.VehicleID),
		t.setShipmentIDs(p.ShipmentIDs),
		t.setPlannedRoute(p.PlannedRoute),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// Number formats a tour number as TR-YYYYMMDD-XXXXXXXX.
func Number(date time.Time, id kernel.UUID) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))[:8]
	return fmt.Sprintf("TR-%s-%s", date.Format("20060102"), suffix)
}

func (t *Tour) Validate() error {
	if t == nil {
		return ErrTourIsNotConstructed
	}
	return t.guard.Validate(ErrTourIsNotConstructed)
}

func (t *Tour) ID() kernel.UUID            { return t.id }
func (t *Tour) Number() string             { return t.number }
func (t *Tour) Date() time.Time            { return t.date }
func (t *Tour) DriverID() kernel.UUID      { return t.driverID }
func (t *Tour) VehicleID() kernel.UUID     { return t.vehicleID }
func (t *Tour) Status() Status             { return t.status }
func (t *Tour) PlannedRoute() PlannedRoute { return t.plannedRoute }
func (t *Tour) ActualRoute() *ActualRoute  { return t.actualRoute }
func (t *Tour) DeliveriesCompleted() int   { return t.deliveriesCompleted }
func (t *Tour) DeliveriesFailed() int      { return t.deliveriesFailed }
func (t *Tour) Notes() string              { return t.notes }
func (t *Tour) CancellationReason() string { return t.cancellationReason }
func (t *Tour) CreatedAt() time.Time       { return t.createdAt }
func (t *Tour) StartedAt() *time.Time      { return t.startedAt }
func (t *Tour) CompletedAt() *time.Time    { return t.completedAt }
func (t *Tour) Version() int               { return t.version }
func (t *Tour) HoldsResources() bool       { return t.status.HoldsResources() }
func (t *Tour) ContainsShipment(id kernel.UUID) bool {
	return kernel.ContainsUUID(t.shipmentIDs, id)
}

// ShipmentIDs returns a copy of the bound shipment ids.
func (t *Tour) ShipmentIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(t.shipmentIDs))
	copy(out, t.shipmentIDs)
	return out
}

// BumpVersion is called by the repository after a successful write.
func (t *Tour) BumpVersion() {
	t.version++
}

// Patch lists the fields Update may change. Nil fields are left as they are.
type Patch struct {
	Date         *time.Time
	PlannedRoute *PlannedRoute
	Notes        *string
	ShipmentIDs  []kernel.UUID
}

// MembershipChange reports which shipments an Update bound and unbound.
type MembershipChange struct {
	Added   []kernel.UUID
	Removed []kernel.UUID
}

// IsEmpty reports whether membership is unchanged.
func (c MembershipChange) IsEmpty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0
}

// Update applies a patch to a planned tour and returns the membership delta
// the caller has to reflect in the shipment ledger.
func (t *Tour) Update(patch Patch) (MembershipChange, error) {
	if t.status != Planned {
		return MembershipChange{}, errs.NewConflictError("tour "+t.number, "is "+t.status.String()+", not planned")
	}

	next := *t
	var errList []error
	if patch.Date != nil {
		errList = append(errList, next.setDate(*patch.Date))
	}
	if patch.PlannedRoute != nil {
		errList = append(errList, next.setPlannedRoute(*patch.PlannedRoute))
	}
	if patch.ShipmentIDs != nil {
		errList = append(errList, next.setShipmentIDs(patch.ShipmentIDs))
	}
	if err := errors.Join(errList...); err != nil {
		return MembershipChange{}, err
	}
	if patch.Notes != nil {
		next.notes = *patch.Notes
	}

	var change MembershipChange
	if patch.ShipmentIDs != nil {
		for _, id := range next.shipmentIDs {
			if !kernel.ContainsUUID(t.shipmentIDs, id) {
				change.Added = append(change.Added, id)
			}
		}
		for _, id := range t.shipmentIDs {
			if !kernel.ContainsUUID(next.shipmentIDs, id) {
				change.Removed = append(change.Removed, id)
			}
		}
	}

	*t = next
	return change, nil
}

// Start dispatches a planned tour.
func (t *Tour) Start(at time.Time) error {
	next, err := t.status.Start()
	if err != nil {
		return t.wrapConflict(err)
	}
	t.status = next
	started := at.UTC()
	t.startedAt = &started
	return nil
}

// Completion is the driver's report for a finished tour.
type Completion struct {
	ActualRoute         ActualRoute
	DeliveriesCompleted int
	DeliveriesFailed    int
	Notes               *string
}

// Complete closes the tour. A planned tour is started implicitly.
func (t *Tour) Complete(report Completion, at time.Time) error {
	next, err := t.status.Complete()
	if err != nil {
		return t.wrapConflict(err)
	}
	if err := report.ActualRoute.Validate(); err != nil {
		return err
	}
	if err := t.validateCounters(report.DeliveriesCompleted, report.DeliveriesFailed); err != nil {
		return err
	}

	at = at.UTC()
	if t.startedAt == nil {
		t.startedAt = &at
	}
	route := report.ActualRoute
	t.actualRoute = &route
	t.deliveriesCompleted = report.DeliveriesCompleted
	t.deliveriesFailed = report.DeliveriesFailed
	if report.Notes != nil {
		t.notes = *report.Notes
	}
	t.completedAt = &at
	t.status = next
	return nil
}

// Cancel abandons a planned tour.
func (t *Tour) Cancel(reason string) error {
	next, err := t.status.Cancel()
	if err != nil {
		return t.wrapConflict(err)
	}
	t.status = next
	t.cancellationReason = reason
	return nil
}

// ValidateDelete refuses deletion of a dispatched tour.
func (t *Tour) ValidateDelete() error {
	if t.status == InProgress {
		return errs.NewConflictError("tour "+t.number, "is in progress")
	}
	return nil
}

func (t *Tour) validateCounters(completed, failed int) error {
	var errList []error
	if completed < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("deliveriesCompleted", completed, 0, len(t.shipmentIDs)))
	}
	if failed < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("deliveriesFailed", failed, 0, len(t.shipmentIDs)))
	}
	if len(errList) == 0 && completed+failed > len(t.shipmentIDs) {
		errList = append(errList, errs.NewValueIsOutOfRangeError(
			"deliveriesCompleted+deliveriesFailed", completed+failed, 0, len(t.shipmentIDs)))
	}
	return errors.Join(errList...)
}

func (t *Tour) wrapConflict(err error) error {
	var conflict *errs.ConflictError
	if errors.As(err, &conflict) {
		return errs.NewConflictError("tour "+t.number, conflict.Reason)
	}
	return err
}

func (t *Tour) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Tour) setDate(date time.Time) error {
	if date.IsZero() {
		return ErrDateIsRequired
	}
	y, m, d := date.Date()
	t.date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return nil
}

func (t *Tour) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}
	t.driverID = id
	return nil
}

func (t *Tour) setVehicleID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("vehicleId", err)
	}
	t.vehicleID = id
	return nil
}

func (t *Tour) setShipmentIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return ErrShipmentsAreRequired
	}
	unique := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		if kernel.ContainsUUID(unique, id) {
			return errs.NewValueIsInvalidErrorWithCause("shipmentIds", fmt.Errorf("%s is listed twice", id))
		}
		unique = append(unique, id)
	}
	t.shipmentIDs = unique
	return nil
}

func (t *Tour) setPlannedRoute(route PlannedRoute) error {
	if err := route.Validate(); err != nil {
		return err
	}
	t.plannedRoute = route
	return nil
}

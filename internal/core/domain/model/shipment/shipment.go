package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	trackingNumberPrefix = "SHP"
	trackingNumberLength = 10
	trackingAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var (
	// ErrTrackingNumberIsRequired is returned when restoring a shipment without a tracking number.
	ErrTrackingNumberIsRequired = errs.NewValueIsRequiredError("trackingNumber")
	// ErrRecipientNameIsRequired is returned when the recipient is missing.
	ErrRecipientNameIsRequired = errs.NewValueIsRequiredError("recipientName")
	// ErrDestinationIsRequired is returned when the delivery address is missing.
	ErrDestinationIsRequired = errs.NewValueIsRequiredError("destination")
	// ErrHistoryIsRequired is returned when restoring a shipment with an empty tracking history.
	ErrHistoryIsRequired = errs.NewValueIsRequiredError("trackingHistory")
	// ErrShipmentIsNotConstructed is returned when using a Shipment that was not created by NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")
)

// Shipment is the aggregate root of the shipment ledger. It owns the shipment's
// status and its append-only tracking history.
//
// Shipment follows these invariants:
//   - The tracking number never changes once assigned
//   - Every status change appends exactly one TrackingEntry; entries are never modified
//   - Manual changes follow the edge table in Status; tour-driven changes use the
//     dedicated AssignToTour, ReleaseFromTour and Settle methods
//   - An invoiced or tour-assigned shipment cannot be deleted
type Shipment struct {
	// id is the unique identifier of the shipment
	id kernel.UUID

	// trackingNumber is the public identifier printed on labels
	trackingNumber string

	// recipientName is the person or company receiving the parcel
	recipientName string

	// destination is the delivery address
	destination string

	// weight is the parcel weight in kilograms
	weight decimal.Decimal

	// status is the current lifecycle state
	status Status

	// history is the append-only audit trail, oldest first
	history []TrackingEntry

	// tourID references the tour the shipment is bound to (nil if unassigned)
	tourID *kernel.UUID

	// isInvoiced blocks deletion and reassignment once billed
	isInvoiced bool

	// actualDeliveryDate is stamped when a tour settles the shipment as delivered
	actualDeliveryDate *time.Time

	// version is the optimistic concurrency token maintained by the repository
	version int

	// guard ensures the shipment was properly constructed
	guard guard.ConstructorGuard
}

// NewShipment registers a pending shipment and records the "created" entry.
// An empty trackingNumber is replaced with a generated one.
//
// Example:
//
//	s, err := shipment.NewShipment(kernel.NewUUID(), "", "ACME GmbH", "Hafenstr. 1, Hamburg",
//	    decimal.NewFromFloat(2.5), shipment.Note{At: time.Now(), Actor: "clerk-7"})
func NewShipment(
	id kernel.UUID,
	trackingNumber string,
	recipientName string,
	destination string,
	weight decimal.Decimal,
	note Note,
) (*Shipment, error) {
	if strings.TrimSpace(trackingNumber) == "" {
		trackingNumber = GenerateTrackingNumber()
	}

	s := &Shipment{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setTrackingNumber(trackingNumber),
		s.setRecipientName(recipientName),
		s.setDestination(destination),
		s.setWeight(weight),
	); err != nil {
		return nil, err
	}

	if note.Description == "" {
		note.Description = "shipment registered"
	}
	if err := s.appendEntry(Pending, EventCreated, note); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment rebuilds a persisted shipment. It performs no transition checks.
func RestoreShipment(
	id kernel.UUID,
	trackingNumber string,
	recipientName string,
	destination string,
	weight decimal.Decimal,
	status Status,
	history []TrackingEntry,
	tourID *kernel.UUID,
	isInvoiced bool,
	actualDeliveryDate *time.Time,
	version int,
) (*Shipment, error) {
	s := &Shipment{
		isInvoiced:         isInvoiced,
		actualDeliveryDate: actualDeliveryDate,
		version:            version,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setTrackingNumber(trackingNumber),
		s.setRecipientName(recipientName),
		s.setDestination(destination),
		s.setWeight(weight),
		s.setStatus(status),
		s.setHistory(history),
		s.setTourID(tourID),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// GenerateTrackingNumber returns "SHP" followed by 10 uppercase alphanumerics.
func GenerateTrackingNumber() string {
	random := uuid.New()
	var b strings.Builder
	b.WriteString(trackingNumberPrefix)
	for i := range trackingNumberLength {
		b.WriteByte(trackingAlphabet[int(random[i])%len(trackingAlphabet)])
	}
	return b.String()
}

func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

func (s *Shipment) ID() kernel.UUID {
	return s.id
}

func (s *Shipment) TrackingNumber() string {
	return s.trackingNumber
}

func (s *Shipment) RecipientName() string {
	return s.recipientName
}

func (s *Shipment) Destination() string {
	return s.destination
}

func (s *Shipment) Weight() decimal.Decimal {
	return s.weight
}

func (s *Shipment) Status() Status {
	return s.status
}

// History returns a copy of the tracking history, oldest first.
func (s *Shipment) History() []TrackingEntry {
	out := make([]TrackingEntry, len(s.history))
	copy(out, s.history)
	return out
}

// TourID returns the bound tour or nil.
func (s *Shipment) TourID() *kernel.UUID {
	return s.tourID
}

func (s *Shipment) IsInvoiced() bool {
	return s.isInvoiced
}

func (s *Shipment) ActualDeliveryDate() *time.Time {
	return s.actualDeliveryDate
}

func (s *Shipment) Version() int {
	return s.version
}

// BumpVersion is called by the repository after a successful write.
func (s *Shipment) BumpVersion() {
	s.version++
}

// LastRecordedStatus returns the status of the newest tracking entry.
func (s *Shipment) LastRecordedStatus() Status {
	if len(s.history) == 0 {
		return s.status
	}
	return s.history[len(s.history)-1].Status()
}

// AllowedTransitions returns the statuses a manual update may select from.
func (s *Shipment) AllowedTransitions() []Status {
	return s.status.AllowedTransitions()
}

// Transition applies a manual status change along the edge table.
// An illegal edge returns a validation error and leaves the shipment unchanged.
func (s *Shipment) Transition(next Status, note Note) error {
	if err := s.status.CanTransitionTo(next); err != nil {
		return err
	}
	if note.Description == "" {
		note.Description = fmt.Sprintf("status changed from %s to %s", s.status, next)
	}
	return s.appendEntry(next, EventStatusChanged, note)
}

// CheckEligibleForTour returns a Conflict error explaining why the shipment cannot be
// bound to a new tour, or nil.
func (s *Shipment) CheckEligibleForTour() error {
	switch {
	case s.tourID != nil:
		return errs.NewConflictError("shipment "+s.trackingNumber, "is already assigned to a tour")
	case s.isInvoiced:
		return errs.NewConflictError("shipment "+s.trackingNumber, "is invoiced")
	case !s.status.IsEligibleForTour():
		return errs.NewConflictError("shipment "+s.trackingNumber, fmt.Sprintf("has status %s", s.status))
	}
	return nil
}

// AssignToTour binds the shipment to a tour and moves it to in_transit.
func (s *Shipment) AssignToTour(tourID kernel.UUID, tourNumber string, note Note) error {
	if err := tourID.Validate(); err != nil {
		return err
	}
	if err := s.CheckEligibleForTour(); err != nil {
		return err
	}

	if note.Description == "" {
		note.Description = "assigned to tour " + tourNumber
	}
	if err := s.appendEntry(InTransit, EventTourAssigned, note); err != nil {
		return err
	}
	s.tourID = &tourID
	return nil
}

// ReleaseFromTour unbinds the shipment from a tour that is cancelled or deleted before dispatch.
// When nothing happened since the assignment, the status recorded before it is restored;
// otherwise the current status is kept. Either way a tour_released entry is appended.
func (s *Shipment) ReleaseFromTour(tourID kernel.UUID, tourNumber string, note Note) error {
	if s.tourID == nil || !s.tourID.IsEqual(tourID) {
		return errs.NewConflictError("shipment "+s.trackingNumber, "is not assigned to tour "+tourNumber)
	}

	target := s.status
	if last := s.history[len(s.history)-1]; last.Event() == EventTourAssigned {
		target = s.statusBeforeAssignment()
	}

	if note.Description == "" {
		note.Description = "released from tour " + tourNumber
	}
	if err := s.appendEntry(target, EventTourReleased, note); err != nil {
		return err
	}
	s.tourID = nil
	return nil
}

// ClearTourReference drops a reference to a finished tour that is being removed.
// Status and history are untouched.
func (s *Shipment) ClearTourReference(tourID kernel.UUID) {
	if s.tourID != nil && s.tourID.IsEqual(tourID) {
		s.tourID = nil
	}
}

// Settle resolves the final status when the bound tour completes.
// A shipment already delivered is skipped and settled is false. Every other shipment,
// returned and cancelled included, is resolved by its last recorded status:
// out_for_delivery yields delivered (stamping the delivery date) and anything else
// yields failed_delivery.
func (s *Shipment) Settle(tourNumber string, note Note) (outcome Status, settled bool, err error) {
	if s.status == Delivered {
		return s.status, false, nil
	}

	outcome = FailedDelivery
	if s.LastRecordedStatus() == OutForDelivery {
		outcome = Delivered
	}

	if note.Description == "" {
		note.Description = fmt.Sprintf("tour %s completed: %s", tourNumber, outcome)
	}
	if err = s.appendEntry(outcome, EventTourSettled, note); err != nil {
		return Unknown, false, err
	}
	if outcome == Delivered {
		at := note.At.UTC()
		s.actualDeliveryDate = &at
	}
	return outcome, true, nil
}

// ForceFailedDelivery is the administrative override used by incident reporting.
// It bypasses the edge table for any non-terminal shipment; terminal shipments are left
// unchanged and applied is false.
func (s *Shipment) ForceFailedDelivery(note Note) (applied bool, err error) {
	if s.status.IsTerminal() {
		return false, nil
	}
	if note.Description == "" {
		note.Description = "marked failed by incident report"
	}
	if err = s.appendEntry(FailedDelivery, EventIncidentOverride, note); err != nil {
		return false, err
	}
	return true, nil
}

// MarkInvoiced is called by the invoicing collaborator once the shipment is billed.
func (s *Shipment) MarkInvoiced() {
	s.isInvoiced = true
}

// CanBeDeleted returns a Conflict error when the shipment is invoiced or tour-assigned.
func (s *Shipment) CanBeDeleted() error {
	if s.isInvoiced {
		return errs.NewConflictError("shipment "+s.trackingNumber, "is invoiced")
	}
	if s.tourID != nil {
		return errs.NewConflictError("shipment "+s.trackingNumber, "is assigned to a tour")
	}
	return nil
}

func (s *Shipment) statusBeforeAssignment() Status {
	for i := len(s.history) - 1; i > 0; i-- {
		if s.history[i].Event() == EventTourAssigned {
			return s.history[i-1].Status()
		}
	}
	return Pending
}

func (s *Shipment) appendEntry(status Status, event Event, note Note) error {
	entry, err := NewTrackingEntry(status, event, note)
	if err != nil {
		return err
	}
	s.history = append(s.history, entry)
	s.status = status
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setTrackingNumber(trackingNumber string) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return ErrTrackingNumberIsRequired
	}
	if len(trackingNumber) > 64 {
		return errs.NewValueIsOutOfRangeError("trackingNumber length", len(trackingNumber), 1, 64)
	}
	s.trackingNumber = trackingNumber
	return nil
}

func (s *Shipment) setRecipientName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrRecipientNameIsRequired
	}
	s.recipientName = name
	return nil
}

func (s *Shipment) setDestination(destination string) error {
	if strings.TrimSpace(destination) == "" {
		return ErrDestinationIsRequired
	}
	s.destination = destination
	return nil
}

func (s *Shipment) setWeight(weight decimal.Decimal) error {
	if !weight.IsPositive() {
		return errs.NewValueIsOutOfRangeError("weight", weight.String(), "0 (exclusive)", "+inf")
	}
	s.weight = weight
	return nil
}

func (s *Shipment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func (s *Shipment) setHistory(history []TrackingEntry) error {
	if len(history) == 0 {
		return ErrHistoryIsRequired
	}
	for _, entry := range history {
		if err := entry.Validate(); err != nil {
			return err
		}
	}
	s.history = make([]TrackingEntry, len(history))
	copy(s.history, history)
	return nil
}

func (s *Shipment) setTourID(tourID *kernel.UUID) error {
	if tourID == nil {
		return nil
	}
	if err := tourID.Validate(); err != nil {
		return err
	}
	id := *tourID
	s.tourID = &id
	return nil
}

package shipment

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrTrackingEntryIsNotConstructed is returned when using a TrackingEntry that was not created by NewTrackingEntry.
var ErrTrackingEntryIsNotConstructed = errors.New("TrackingEntry must be created via NewTrackingEntry constructor")

// Event names the cause of a tracking entry.
type Event int

const (
	EventUnknown Event = iota
	// EventCreated is the first entry of every shipment.
	EventCreated
	// EventStatusChanged records a manual, edge-validated transition.
	EventStatusChanged
	// EventTourAssigned records binding to a tour.
	EventTourAssigned
	// EventTourReleased records unbinding from a cancelled or deleted tour.
	EventTourReleased
	// EventTourSettled records the outcome inferred when the tour completed.
	EventTourSettled
	// EventIncidentOverride records the administrative failed_delivery write caused by an incident.
	EventIncidentOverride
)

func getEventStrings() map[Event]string {
	return map[Event]string{
		EventUnknown:          "unknown",
		EventCreated:          "created",
		EventStatusChanged:    "status_changed",
		EventTourAssigned:     "tour_assigned",
		EventTourReleased:     "tour_released",
		EventTourSettled:      "tour_settled",
		EventIncidentOverride: "incident_override",
	}
}

func (e Event) String() string {
	if str, ok := getEventStrings()[e]; ok {
		return str
	}
	return "unknown"
}

func (e Event) Validate() error {
	if e <= EventUnknown || e > EventIncidentOverride {
		return errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%d is not a valid tracking event", e))
	}
	return nil
}

// ParseEvent resolves a stored event name.
func ParseEvent(value string) (Event, error) {
	for event, str := range getEventStrings() {
		if event != EventUnknown && str == value {
			return event, nil
		}
	}
	return EventUnknown, errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%q is not a valid tracking event", value))
}

// Note carries the audit context of a change: when, where, why and who.
type Note struct {
	At          time.Time
	Location    string
	Description string
	Actor       string
}

// TrackingEntry is one immutable element of a shipment's history.
type TrackingEntry struct {
	timestamp   time.Time
	status      Status
	event       Event
	location    string
	description string
	actor       string
	guard       guard.ConstructorGuard
}

func NewTrackingEntry(status Status, event Event, note Note) (TrackingEntry, error) {
	if err := errors.Join(status.Validate(), event.Validate()); err != nil {
		return TrackingEntry{}, err
	}
	if note.At.IsZero() {
		return TrackingEntry{}, errs.NewValueIsRequiredError("timestamp")
	}

	return TrackingEntry{
		timestamp:   note.At.UTC(),
		status:      status,
		event:       event,
		location:    note.Location,
		description: note.Description,
		actor:       note.Actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (e TrackingEntry) Validate() error {
	return e.guard.Validate(ErrTrackingEntryIsNotConstructed)
}

func (e TrackingEntry) Timestamp() time.Time { return e.timestamp }
func (e TrackingEntry) Status() Status       { return e.status }
func (e TrackingEntry) Event() Event         { return e.event }
func (e TrackingEntry) Location() string     { return e.location }
func (e TrackingEntry) Description() string  { return e.description }
func (e TrackingEntry) Actor() string        { return e.actor }

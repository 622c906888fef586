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
	ErrStartLocationIsRequired      = errs.NewValueIsRequiredError("plannedRoute.startLocation")
	ErrEndLocationIsRequired        = errs.NewValueIsRequiredError("plannedRoute.endLocation")
	ErrPlannedRouteIsNotConstructed = errors.New("PlannedRoute must be created via NewPlannedRoute constructor")
	ErrActualRouteIsNotConstructed  = errors.New("ActualRoute must be created via NewActualRoute constructor")
)

// PlannedRoute is the itinerary agreed when the tour is created.
type PlannedRoute struct {
	startLocation     string
	endLocation       string
	estimatedDistance kernel.Distance
	estimatedDuration time.Duration
	guard             guard.ConstructorGuard
}

func NewPlannedRoute(
	startLocation string,
	endLocation string,
	estimatedDistance kernel.Distance,
	estimatedDuration time.Duration,
) (PlannedRoute, error) {
	var errList []error
	if strings.TrimSpace(startLocation) == "" {
		errList = append(errList, ErrStartLocationIsRequired)
	}
	if strings.TrimSpace(endLocation) == "" {
		errList = append(errList, ErrEndLocationIsRequired)
	}
	if err := estimatedDistance.Validate(); err != nil {
		errList = append(errList, err)
	}
	if estimatedDuration < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("plannedRoute.estimatedDuration", estimatedDuration, 0, "+inf"))
	}
	if err := errors.Join(errList...); err != nil {
		return PlannedRoute{}, err
	}

	return PlannedRoute{
		startLocation:     startLocation,
		endLocation:       endLocation,
		estimatedDistance: estimatedDistance,
		estimatedDuration: estimatedDuration,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (r PlannedRoute) Validate() error {
	return r.guard.Validate(ErrPlannedRouteIsNotConstructed)
}

func (r PlannedRoute) StartLocation() string              { return r.startLocation }
func (r PlannedRoute) EndLocation() string                { return r.endLocation }
func (r PlannedRoute) EstimatedDistance() kernel.Distance { return r.estimatedDistance }
func (r PlannedRoute) EstimatedDuration() time.Duration   { return r.estimatedDuration }

// ActualRoute is what the driver reports when the tour completes.
type ActualRoute struct {
	startTime      *time.Time
	endTime        *time.Time
	actualDistance kernel.Distance
	guard          guard.ConstructorGuard
}

func NewActualRoute(startTime, endTime *time.Time, actualDistance kernel.Distance) (ActualRoute, error) {
	if err := actualDistance.Validate(); err != nil {
		return ActualRoute{}, err
	}
	if startTime != nil && endTime != nil && endTime.Before(*startTime) {
		return ActualRoute{}, errs.NewValueIsInvalidErrorWithCause(
			"actualRoute.endTime",
			fmt.Errorf("%s is before start time %s", endTime.Format(time.RFC3339), startTime.Format(time.RFC3339)),
		)
	}

	return ActualRoute{
		startTime:      utcPtr(startTime),
		endTime:        utcPtr(endTime),
		actualDistance: actualDistance,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (r ActualRoute) Validate() error {
	return r.guard.Validate(ErrActualRouteIsNotConstructed)
}

func (r ActualRoute) StartTime() *time.Time           { return r.startTime }
func (r ActualRoute) EndTime() *time.Time             { return r.endTime }
func (r ActualRoute) ActualDistance() kernel.Distance { return r.actualDistance }

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

package kernel

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrDistanceIsNotConstructed is returned when using a Distance that was not created by a constructor.
var ErrDistanceIsNotConstructed = errors.New("Distance must be created via NewDistance or DistanceFromFloat")

// Distance is a non-negative road distance in kilometres.
// It backs planned/actual route distances and vehicle mileage, and keeps
// arithmetic exact by storing a decimal rather than a float.
type Distance struct {
	km    decimal.Decimal
	guard guard.ConstructorGuard
}

// NewDistance validates km and returns a Distance rounded to metres.
func NewDistance(km decimal.Decimal) (Distance, error) {
	if km.IsNegative() {
		return Distance{}, errs.NewValueIsOutOfRangeError("distance", km.String(), 0, "+inf")
	}
	return Distance{km: km.Round(3), guard: guard.NewConstructorGuard()}, nil
}

// DistanceFromFloat is a convenience wrapper around NewDistance.
func DistanceFromFloat(km float64) (Distance, error) {
	return NewDistance(decimal.NewFromFloat(km))
}

// ZeroDistance returns a constructed zero distance.
func ZeroDistance() Distance {
	return Distance{km: decimal.Zero, guard: guard.NewConstructorGuard()}
}

func (d Distance) Validate() error {
	return d.guard.Validate(ErrDistanceIsNotConstructed)
}

// Kilometres returns the distance as a decimal.
func (d Distance) Kilometres() decimal.Decimal {
	return d.km
}

// Add returns the sum of both distances.
func (d Distance) Add(other Distance) (Distance, error) {
	if err := errors.Join(d.Validate(), other.Validate()); err != nil {
		return Distance{}, err
	}
	return NewDistance(d.km.Add(other.km))
}

func (d Distance) IsZero() bool {
	return d.km.IsZero()
}

func (d Distance) IsEqual(other Distance) bool {
	return d.km.Equal(other.km)
}

// String renders the distance as "12.5 km".
func (d Distance) String() string {
	return d.km.String() + " km"
}

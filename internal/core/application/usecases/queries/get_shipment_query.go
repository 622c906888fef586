package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New("GetShipmentQuery must be created via NewGetShipmentQuery constructor")

// GetShipmentQuery loads a shipment together with its tracking history.
type GetShipmentQuery struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetShipmentQuery(id kernel.UUID) (GetShipmentQuery, error) {
	if err := id.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}
	return GetShipmentQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

func (q GetShipmentQuery) ID() kernel.UUID {
	return q.id
}

// GetShipmentQueryResponse is the shipment read model. History is oldest first.
type GetShipmentQueryResponse struct {
	ID                 kernel.UUID
	TrackingNumber     string
	RecipientName      string
	Destination        string
	Weight             decimal.Decimal
	Status             shipment.Status
	TourID             *kernel.UUID
	IsInvoiced         bool
	ActualDeliveryDate *time.Time
	Version            int
	History            []TrackingEntryView
}

type TrackingEntryView struct {
	Timestamp   time.Time
	Status      shipment.Status
	Event       shipment.Event
	Location    string
	Description string
	Actor       string
}

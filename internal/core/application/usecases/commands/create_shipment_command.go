package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand registers a shipment. An empty tracking number is generated.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID     kernel.UUID
	trackingNumber string
	recipientName  string
	destination    string
	weight         decimal.Decimal
	actor          string

	guard guard.ConstructorGuard
}

func NewCreateShipmentCommand(
	shipmentID kernel.UUID,
	trackingNumber string,
	recipientName string,
	destination string,
	weight decimal.Decimal,
	actor string,
) (CreateShipmentCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return CreateShipmentCommand{}, err
	}

	return CreateShipmentCommand{
		shipmentID:     shipmentID,
		trackingNumber: trackingNumber,
		recipientName:  recipientName,
		destination:    destination,
		weight:         weight,
		actor:          actor,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }
func (c CreateShipmentCommand) TrackingNumber() string  { return c.trackingNumber }
func (c CreateShipmentCommand) RecipientName() string   { return c.recipientName }
func (c CreateShipmentCommand) Destination() string     { return c.destination }
func (c CreateShipmentCommand) Weight() decimal.Decimal { return c.weight }
func (c CreateShipmentCommand) Actor() string           { return c.actor }

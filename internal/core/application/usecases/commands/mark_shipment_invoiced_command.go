package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrMarkShipmentInvoicedCommandIsNotConstructed = errors.New(
	"MarkShipmentInvoicedCommand must be created via NewMarkShipmentInvoicedCommand constructor",
)

// MarkShipmentInvoicedCommand is sent by the invoicing system once a shipment is billed.
type MarkShipmentInvoicedCommand struct {
	shipmentID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewMarkShipmentInvoicedCommand(shipmentID kernel.UUID) (MarkShipmentInvoicedCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return MarkShipmentInvoicedCommand{}, err
	}
	return MarkShipmentInvoicedCommand{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkShipmentInvoicedCommand) Validate() error {
	return c.guard.Validate(ErrMarkShipmentInvoicedCommandIsNotConstructed)
}

func (c MarkShipmentInvoicedCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

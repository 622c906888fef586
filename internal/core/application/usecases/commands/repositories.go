// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	TourRepoFactory interface {
		TourRepository() ports.TourRepository
	}

	IncidentRepoFactory interface {
		IncidentRepository() ports.IncidentRepository
	}

	RegistryFactory interface {
		ResourceRegistry() ports.ResourceRegistry
	}

	// ResourceUoW manages transactions for driver and vehicle administration.
	ResourceUoW interface {
		TxManager
		DriverRepoFactory
		VehicleRepoFactory
	}

	ResourceUoWFactory interface {
		Create() ResourceUoW
	}

	// ShipmentUoW manages transactions that only touch the shipment ledger.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// IncidentUoW manages transactions that only touch incidents.
	IncidentUoW interface {
		TxManager
		IncidentRepoFactory
	}

	IncidentUoWFactory interface {
		Create() IncidentUoW
	}

	// UoW manages transactions across tours, shipments, resources and the registry.
	// Used by tour lifecycle and incident reporting, which cascade across aggregates.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   tourRepo := uow.TourRepository()
	//   registry := uow.ResourceRegistry()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		DriverRepoFactory
		VehicleRepoFactory
		ShipmentRepoFactory
		TourRepoFactory
		IncidentRepoFactory
		RegistryFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

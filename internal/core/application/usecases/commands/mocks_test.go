package commands_test

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/incident"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/core/domain/model/tour"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Add(ctx context.Context, v *vehicle.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.Vehicle), args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetEligibleForTour(ctx context.Context, ids []kernel.UUID) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByIDsForUpdate(ctx context.Context, ids []kernel.UUID) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByTour(ctx context.Context, tourID kernel.UUID) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockTourRepository struct{ mock.Mock }

func (m *MockTourRepository) Add(ctx context.Context, t *tour.Tour) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTourRepository) Update(ctx context.Context, t *tour.Tour) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTourRepository) Get(ctx context.Context, id kernel.UUID) (*tour.Tour, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tour.Tour), args.Error(1)
}

func (m *MockTourRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*tour.Tour, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tour.Tour), args.Error(1)
}

func (m *MockTourRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockIncidentRepository struct{ mock.Mock }

func (m *MockIncidentRepository) Add(ctx context.Context, i *incident.Incident) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockIncidentRepository) Update(ctx context.Context, i *incident.Incident) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockIncidentRepository) Get(ctx context.Context, id kernel.UUID) (*incident.Incident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*incident.Incident), args.Error(1)
}

type MockRegistry struct{ mock.Mock }

func (m *MockRegistry) TryAllocate(ctx context.Context, claim resource.Claim) error {
	return m.Called(ctx, claim).Error(0)
}

func (m *MockRegistry) Release(
	ctx context.Context,
	kind resource.Kind,
	resourceID kernel.UUID,
	tourID kernel.UUID,
	newStatus resource.Status,
) error {
	return m.Called(ctx, kind, resourceID, tourID, newStatus).Error(0)
}

func (m *MockRegistry) Allocations(ctx context.Context) ([]resource.Allocation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]resource.Allocation), args.Error(1)
}

type MockLocker struct{ mock.Mock }

func (m *MockLocker) Lock(ctx context.Context, keys ...string) (func(context.Context) error, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func(context.Context) error), args.Error(1)
}

func noopUnlock(context.Context) error { return nil }

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	return m.Called().Get(0).(ports.DriverRepository)
}

func (m *MockUoW) VehicleRepository() ports.VehicleRepository {
	return m.Called().Get(0).(ports.VehicleRepository)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	return m.Called().Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) TourRepository() ports.TourRepository {
	return m.Called().Get(0).(ports.TourRepository)
}

func (m *MockUoW) IncidentRepository() ports.IncidentRepository {
	return m.Called().Get(0).(ports.IncidentRepository)
}

func (m *MockUoW) ResourceRegistry() ports.ResourceRegistry {
	return m.Called().Get(0).(ports.ResourceRegistry)
}

type MockUoWFactory struct{ uow *MockUoW }

func (f MockUoWFactory) Create() commands.UoW { return f.uow }

type MockShipmentUoWFactory struct{ uow *MockUoW }

func (f MockShipmentUoWFactory) Create() commands.ShipmentUoW { return f.uow }

type MockResourceUoWFactory struct{ uow *MockUoW }

func (f MockResourceUoWFactory) Create() commands.ResourceUoW { return f.uow }

type MockIncidentUoWFactory struct{ uow *MockUoW }

func (f MockIncidentUoWFactory) Create() commands.IncidentUoW { return f.uow }

// repos bundles one mock per port and a unit of work that hands them out.
type repos struct {
	uow       *MockUoW
	drivers   *MockDriverRepository
	vehicles  *MockVehicleRepository
	shipments *MockShipmentRepository
	tours     *MockTourRepository
	incidents *MockIncidentRepository
	registry  *MockRegistry
}

func newRepos() repos {
	r := repos{
		uow:       new(MockUoW),
		drivers:   new(MockDriverRepository),
		vehicles:  new(MockVehicleRepository),
		shipments: new(MockShipmentRepository),
		tours:     new(MockTourRepository),
		incidents: new(MockIncidentRepository),
		registry:  new(MockRegistry),
	}
	r.uow.On("DriverRepository").Return(r.drivers).Maybe()
	r.uow.On("VehicleRepository").Return(r.vehicles).Maybe()
	r.uow.On("ShipmentRepository").Return(r.shipments).Maybe()
	r.uow.On("TourRepository").Return(r.tours).Maybe()
	r.uow.On("IncidentRepository").Return(r.incidents).Maybe()
	r.uow.On("ResourceRegistry").Return(r.registry).Maybe()
	r.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return r
}

func (r repos) assertExpectations(t mock.TestingT) {
	r.uow.AssertExpectations(t)
	r.drivers.AssertExpectations(t)
	r.vehicles.AssertExpectations(t)
	r.shipments.AssertExpectations(t)
	r.tours.AssertExpectations(t)
	r.incidents.AssertExpectations(t)
	r.registry.AssertExpectations(t)
}

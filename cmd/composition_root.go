package cmd

import (
	"dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/redislock"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	locker     ports.ResourceLocker
	logger     logrus.FieldLogger
}

// NewCompositionRoot wires the adapters. rdb may be nil, in which case tour
// creation relies on row locks alone.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, rdb redis.UniversalClient, logger logrus.FieldLogger) CompositionRoot {
	var locker ports.ResourceLocker = redislock.NoopLocker{}
	if rdb != nil {
		locker = redislock.NewLocker(rdb, logger)
	}
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		locker:     locker,
		logger:     logger,
	}
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) shipmentUoW() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) resourceUoW() commands.ResourceUoWFactory {
	return FuncResourceUoWFactory(func() commands.ResourceUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) incidentUoW() commands.IncidentUoWFactory {
	return FuncIncidentUoWFactory(func() commands.IncidentUoW {
		return c.uowFactory.Create()
	})
}

// HTTPHandlers builds every use case the REST adapter dispatches to.
func (c *CompositionRoot) HTTPHandlers() http.Handlers {
	return http.Handlers{
		CreateTour:   commands.NewCreateTourCommandHandler(c.uow(), c.locker, c.logger),
		UpdateTour:   commands.NewUpdateTourCommandHandler(c.uow()),
		StartTour:    commands.NewStartTourCommandHandler(c.uow()),
		CompleteTour: commands.NewCompleteTourCommandHandler(c.uow(), c.logger),
		CancelTour:   commands.NewCancelTourCommandHandler(c.uow()),
		DeleteTour:   commands.NewDeleteTourCommandHandler(c.uow()),

		CreateShipment:       commands.NewCreateShipmentCommandHandler(c.shipmentUoW()),
		UpdateShipmentStatus: commands.NewUpdateShipmentStatusCommandHandler(c.shipmentUoW()),
		MarkShipmentInvoiced: commands.NewMarkShipmentInvoicedCommandHandler(c.shipmentUoW()),
		DeleteShipment:       commands.NewDeleteShipmentCommandHandler(c.shipmentUoW()),

		CreateIncident:       commands.NewCreateIncidentCommandHandler(c.uow(), c.logger),
		ChangeIncidentStatus: commands.NewChangeIncidentStatusCommandHandler(c.incidentUoW()),
		ResolveIncident:      commands.NewResolveIncidentCommandHandler(c.incidentUoW()),

		CreateDriver:            commands.NewCreateDriverCommandHandler(c.resourceUoW()),
		CreateVehicle:           commands.NewCreateVehicleCommandHandler(c.resourceUoW()),
		SetResourceAvailability: commands.NewSetResourceAvailabilityCommandHandler(c.resourceUoW()),
		SetResourceActive:       commands.NewSetResourceActiveCommandHandler(c.resourceUoW()),

		GetTour:                queries.NewGetTourQueryHandler(c.gormDB),
		ListTours:              queries.NewListToursQueryHandler(c.gormDB),
		GetShipment:            queries.NewGetShipmentQueryHandler(c.gormDB),
		GetShipmentTransitions: queries.NewGetShipmentTransitionsQueryHandler(c.gormDB),
		ListResources:          queries.NewListResourcesQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateAllocationAuditJob() *jobs.AllocationAuditJob {
	return jobs.NewAllocationAuditJob(
		queries.NewGetAllocationAnomaliesQueryHandler(c.gormDB),
		c.configs.AuditSchedule,
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncResourceUoWFactory func() commands.ResourceUoW

func (f FuncResourceUoWFactory) Create() commands.ResourceUoW {
	return f()
}

type FuncIncidentUoWFactory func() commands.IncidentUoW

func (f FuncIncidentUoWFactory) Create() commands.IncidentUoW {
	return f()
}

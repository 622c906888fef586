package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/incident"
	"dispatch/internal/core/domain/model/shipment"

	"github.com/sirupsen/logrus"
)

// CreateIncidentCommandHandler records an incident. Every referenced entity must exist.
//
// When a shipment is referenced, the shipment is forced to failed_delivery through the
// administrative override, which bypasses the edge table. Shipments already delivered,
// returned or cancelled are left as they are; the incident is still recorded and the
// skipped override is logged.
type CreateIncidentCommandHandler struct {
	uowFactory UoWFactory
	logger     logrus.FieldLogger
}

func NewCreateIncidentCommandHandler(uowFactory UoWFactory, logger logrus.FieldLogger) CreateIncidentCommandHandler {
	return CreateIncidentCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.WithField("component", "incident_recorder"),
	}
}

func (h CreateIncidentCommandHandler) Handle(ctx context.Context, cmd CreateIncidentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()
	inc, err := incident.NewIncident(cmd.IncidentID(), cmd.Type(), cmd.Description(), cmd.Refs(), cmd.ReporterID(), now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	refs := cmd.Refs()
	if refs.TourID != nil {
		if _, err = uow.TourRepository().Get(ctx, *refs.TourID); err != nil {
			return err
		}
	}
	if refs.DriverID != nil {
		if _, err = uow.DriverRepository().Get(ctx, *refs.DriverID); err != nil {
			return err
		}
	}
	if refs.VehicleID != nil {
		if _, err = uow.VehicleRepository().Get(ctx, *refs.VehicleID); err != nil {
			return err
		}
	}

	var affected *shipment.Shipment
	if refs.ShipmentID != nil {
		shipmentRepo := uow.ShipmentRepository()
		s, err := shipmentRepo.GetForUpdate(ctx, *refs.ShipmentID)
		if err != nil {
			return err
		}

		note := shipment.Note{
			At:          now,
			Description: "incident " + inc.Type().String() + ": " + inc.Description(),
			Actor:       cmd.ReporterID(),
		}
		applied, err := s.ForceFailedDelivery(note)
		if err != nil {
			return err
		}
		if applied {
			if err = shipmentRepo.Update(ctx, s); err != nil {
				return err
			}
			affected = s
		} else {
			h.logger.WithFields(logrus.Fields{
				"incident": inc.ID().String(),
				"shipment": s.TrackingNumber(),
				"status":   s.Status().String(),
			}).Warn("shipment is terminal, failed_delivery override skipped")
		}
	}

	if err = uow.IncidentRepository().Add(ctx, inc); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	entry := h.logger.WithFields(logrus.Fields{"incident": inc.ID().String(), "type": inc.Type().String()})
	if affected != nil {
		entry = entry.WithField("shipment", affected.TrackingNumber())
	}
	entry.Info("incident recorded")
	return nil
}

package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/incident"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// CreateIncident handles POST /api/v1/incidents. The reporter is the request actor.
func (s *Server) CreateIncident(ctx echo.Context) error {
	var req CreateIncidentRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	typ, err := incident.ParseType(req.Type)
	if err != nil {
		return err
	}

	var refs incident.Refs
	var shipmentErr, tourErr, vehicleErr, driverErr error
	refs.ShipmentID, shipmentErr = toOptionalUUID(req.ShipmentID)
	refs.TourID, tourErr = toOptionalUUID(req.TourID)
	refs.VehicleID, vehicleErr = toOptionalUUID(req.VehicleID)
	refs.DriverID, driverErr = toOptionalUUID(req.DriverID)
	if err = errors.Join(shipmentErr, tourErr, vehicleErr, driverErr); err != nil {
		return err
	}

	incidentID := kernel.NewUUID()
	cmd, err := commands.NewCreateIncidentCommand(incidentID, typ, req.Description, refs, Actor(ctx))
	if err != nil {
		return err
	}
	if err = s.h.CreateIncident.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, IDResponse{ID: fromUUID(incidentID)})
}

func (s *Server) ChangeIncidentStatus(ctx echo.Context, id openapi_types.UUID) error {
	incidentID, err := toUUID(id)
	if err != nil {
		return err
	}
	var req ChangeIncidentStatusRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}
	status, err := incident.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeIncidentStatusCommand(incidentID, status)
	if err != nil {
		return err
	}
	if err = s.h.ChangeIncidentStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) ResolveIncident(ctx echo.Context, id openapi_types.UUID) error {
	incidentID, err := toUUID(id)
	if err != nil {
		return err
	}
	var req ResolveIncidentRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewResolveIncidentCommand(incidentID, Actor(ctx), req.Resolution)
	if err != nil {
		return err
	}
	if err = s.h.ResolveIncident.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shipment"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func (s *Server) CreateShipment(ctx echo.Context) error {
	var req CreateShipmentRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(shipmentID, req.TrackingNumber, req.RecipientName,
		req.Destination, req.WeightKg, Actor(ctx))
	if err != nil {
		return err
	}
	if err = s.h.CreateShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithShipment(ctx, http.StatusCreated, shipmentID)
}

func (s *Server) GetShipment(ctx echo.Context, id openapi_types.UUID) error {
	shipmentID, err := toUUID(id)
	if err != nil {
		return err
	}
	return s.respondWithShipment(ctx, http.StatusOK, shipmentID)
}

// UpdateShipmentStatus handles PATCH /api/v1/shipments/{id}/status. Illegal edges
// come back as 400 with the shipment unchanged.
func (s *Server) UpdateShipmentStatus(ctx echo.Context, id openapi_types.UUID) error {
	shipmentID, err := toUUID(id)
	if err != nil {
		return err
	}
	var req UpdateShipmentStatusRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}
	status, err := shipment.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateShipmentStatusCommand(shipmentID, status, req.Location, req.Description, Actor(ctx))
	if err != nil {
		return err
	}
	if err = s.h.UpdateShipmentStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithShipment(ctx, http.StatusOK, shipmentID)
}

func (s *Server) GetShipmentTransitions(ctx echo.Context, id openapi_types.UUID) error {
	shipmentID, err := toUUID(id)
	if err != nil {
		return err
	}
	query, err := queries.NewGetShipmentTransitionsQuery(shipmentID)
	if err != nil {
		return err
	}
	view, err := s.h.GetShipmentTransitions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	allowed := make([]string, len(view.Allowed))
	for i, st := range view.Allowed {
		allowed[i] = st.String()
	}
	return ctx.JSON(http.StatusOK, ShipmentTransitions{Current: view.Current.String(), Allowed: allowed})
}

func (s *Server) MarkShipmentInvoiced(ctx echo.Context, id openapi_types.UUID) error {
	shipmentID, err := toUUID(id)
	if err != nil {
		return err
	}
	cmd, err := commands.NewMarkShipmentInvoicedCommand(shipmentID)
	if err != nil {
		return err
	}
	if err = s.h.MarkShipmentInvoiced.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithShipment(ctx, http.StatusOK, shipmentID)
}

func (s *Server) DeleteShipment(ctx echo.Context, id openapi_types.UUID) error {
	shipmentID, err := toUUID(id)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteShipmentCommand(shipmentID)
	if err != nil {
		return err
	}
	if err = s.h.DeleteShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) respondWithShipment(ctx echo.Context, status int, id kernel.UUID) error {
	query, err := queries.NewGetShipmentQuery(id)
	if err != nil {
		return err
	}
	view, err := s.h.GetShipment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(status, toShipment(view))
}

func toShipment(view queries.GetShipmentQueryResponse) Shipment {
	history := make([]TrackingEntry, len(view.History))
	for i, e := range view.History {
		history[i] = TrackingEntry{
			Timestamp:   e.Timestamp,
			Status:      e.Status.String(),
			Event:       e.Event.String(),
			Location:    e.Location,
			Description: e.Description,
			UpdatedBy:   e.Actor,
		}
	}

	out := Shipment{
		ID:                 fromUUID(view.ID),
		TrackingNumber:     view.TrackingNumber,
		RecipientName:      view.RecipientName,
		Destination:        view.Destination,
		WeightKg:           view.Weight,
		Status:             view.Status.String(),
		IsInvoiced:         view.IsInvoiced,
		ActualDeliveryDate: view.ActualDeliveryDate,
		Version:            view.Version,
		TrackingHistory:    history,
	}
	if view.TourID != nil {
		tourID := fromUUID(*view.TourID)
		out.TourID = &tourID
	}
	return out
}

package http

import (
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tour"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// CreateTour handles POST /api/v1/tours and answers with the stored tour.
func (s *Server) CreateTour(ctx echo.Context) error {
	var req CreateTourRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	driverID, err := toUUID(req.DriverID)
	if err != nil {
		return err
	}
	vehicleID, err := toUUID(req.VehicleID)
	if err != nil {
		return err
	}
	shipmentIDs, err := toUUIDs(req.ShipmentIDs)
	if err != nil {
		return err
	}
	route, err := toPlannedRoute(req.PlannedRoute)
	if err != nil {
		return err
	}

	tourID := kernel.NewUUID()
	cmd, err := commands.NewCreateTourCommand(tourID, driverID, vehicleID, shipmentIDs, route,
		req.Date.Time, req.Notes, Actor(ctx))
	if err != nil {
		return err
	}
	if err = s.h.CreateTour.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithTour(ctx, http.StatusCreated, tourID)
}

func (s *Server) GetTour(ctx echo.Context, id openapi_types.UUID) error {
	tourID, err := toUUID(id)
	if err != nil {
		return err
	}
	return s.respondWithTour(ctx, http.StatusOK, tourID)
}

func (s *Server) ListTours(ctx echo.Context, params ListToursParams) error {
	var date *time.Time
	if params.Date != nil {
		date = &params.Date.Time
	}
	var status *tour.Status
	if params.Status != nil {
		parsed, err := tour.ParseStatus(*params.Status)
		if err != nil {
			return err
		}
		status = &parsed
	}

	query, err := queries.NewListToursQuery(date, status)
	if err != nil {
		return err
	}
	tours, err := s.h.ListTours.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]TourSummary, len(tours))
	for i, t := range tours {
		response[i] = TourSummary{
			ID:            fromUUID(t.ID),
			Number:        t.Number,
			Date:          openapi_types.Date{Time: t.Date},
			DriverID:      fromUUID(t.DriverID),
			VehicleID:     fromUUID(t.VehicleID),
			Status:        t.Status.String(),
			ShipmentCount: t.ShipmentCount,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) UpdateTour(ctx echo.Context, id openapi_types.UUID) error {
	tourID, err := toUUID(id)
	if err != nil {
		return err
	}
	var req UpdateTourRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}

	patch := tour.Patch{Notes: req.Notes}
	if req.Date != nil {
		patch.Date = &req.Date.Time
	}
	if req.PlannedRoute != nil {
		route, routeErr := toPlannedRoute(*req.PlannedRoute)
		if routeErr != nil {
			return routeErr
		}
		patch.PlannedRoute = &route
	}
	if req.ShipmentIDs != nil {
		if patch.ShipmentIDs, err = toUUIDs(req.ShipmentIDs); err != nil {
			return err
		}
	}

	cmd, err := commands.NewUpdateTourCommand(tourID, patch, Actor(ctx))
	if err != nil {
		return err
	}
	if err = s.h.UpdateTour.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithTour(ctx, http.StatusOK, tourID)
}

func (s *Server) StartTour(ctx echo.Context, id openapi_types.UUID) error {
	tourID, err := toUUID(id)
	if err != nil {
		return err
	}
	cmd, err := commands.NewStartTourCommand(tourID)
	if err != nil {
		return err
	}
	if err = s.h.StartTour.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithTour(ctx, http.StatusOK, tourID)
}

// CompleteTour handles POST /api/v1/tours/{id}/complete. Shipments are settled and
// the driver and vehicle are released in the same transaction.
func (s *Server) CompleteTour(ctx echo.Context, id openapi_types.UUID) error {
	tourID, err := toUUID(id)
	if err != nil {
		return err
	}
	var req CompleteTourRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}

	distance, err := kernel.NewDistance(req.ActualRoute.DistanceKm)
	if err != nil {
		return err
	}
	actual, err := tour.NewActualRoute(req.ActualRoute.StartTime, req.ActualRoute.EndTime, distance)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCompleteTourCommand(tourID, actual, req.DeliveriesCompleted, req.DeliveriesFailed,
		req.Notes, Actor(ctx))
	if err != nil {
		return err
	}
	if err = s.h.CompleteTour.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithTour(ctx, http.StatusOK, tourID)
}

func (s *Server) CancelTour(ctx echo.Context, id openapi_types.UUID) error {
	tourID, err := toUUID(id)
	if err != nil {
		return err
	}
	var req CancelTourRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCancelTourCommand(tourID, req.Reason, Actor(ctx))
	if err != nil {
		return err
	}
	if err = s.h.CancelTour.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithTour(ctx, http.StatusOK, tourID)
}

func (s *Server) DeleteTour(ctx echo.Context, id openapi_types.UUID) error {
	tourID, err := toUUID(id)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteTourCommand(tourID, Actor(ctx))
	if err != nil {
		return err
	}
	if err = s.h.DeleteTour.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) respondWithTour(ctx echo.Context, status int, id kernel.UUID) error {
	query, err := queries.NewGetTourQuery(id)
	if err != nil {
		return err
	}
	view, err := s.h.GetTour.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(status, toTour(view))
}

func toPlannedRoute(body PlannedRoute) (tour.PlannedRoute, error) {
	distance, err := kernel.NewDistance(body.EstimatedDistanceKm)
	if err != nil {
		return tour.PlannedRoute{}, err
	}
	return tour.NewPlannedRoute(body.StartLocation, body.EndLocation, distance,
		time.Duration(body.EstimatedDurationMinutes)*time.Minute)
}

func toTour(view queries.GetTourQueryResponse) Tour {
	shipmentIDs := make([]openapi_types.UUID, len(view.ShipmentIDs))
	for i, id := range view.ShipmentIDs {
		shipmentIDs[i] = fromUUID(id)
	}

	t := Tour{
		ID:          fromUUID(view.ID),
		Number:      view.Number,
		Date:        openapi_types.Date{Time: view.Date},
		DriverID:    fromUUID(view.DriverID),
		VehicleID:   fromUUID(view.VehicleID),
		ShipmentIDs: shipmentIDs,
		Status:      view.Status.String(),
		PlannedRoute: PlannedRoute{
			StartLocation:            view.PlannedRoute.StartLocation,
			EndLocation:              view.PlannedRoute.EndLocation,
			EstimatedDistanceKm:      view.PlannedRoute.EstimatedDistance,
			EstimatedDurationMinutes: int(view.PlannedRoute.EstimatedDuration / time.Minute),
		},
		DeliveriesCompleted: view.DeliveriesCompleted,
		DeliveriesFailed:    view.DeliveriesFailed,
		Notes:               view.Notes,
		CancellationReason:  view.CancellationReason,
		CreatedAt:           view.CreatedAt,
		StartedAt:           view.StartedAt,
		CompletedAt:         view.CompletedAt,
		Version:             view.Version,
	}
	if view.ActualRoute != nil {
		t.ActualRoute = &ActualRoute{
			StartTime:  view.ActualRoute.StartTime,
			EndTime:    view.ActualRoute.EndTime,
			DistanceKm: view.ActualRoute.Distance,
		}
	}
	return t
}

package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

func (s *Server) ListDrivers(ctx echo.Context, params ListResourcesParams) error {
	items, err := s.listResources(ctx, resource.Driver, params)
	if err != nil {
		return err
	}
	response := make([]Driver, len(items))
	for i, item := range items {
		response[i] = Driver{
			ID:            fromUUID(item.ID),
			Name:          item.Name,
			LicenseNumber: item.Identifier,
			Status:        item.Status.Label(resource.Driver),
			IsActive:      item.IsActive,
			Version:       item.Version,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) ListVehicles(ctx echo.Context, params ListResourcesParams) error {
	items, err := s.listResources(ctx, resource.Vehicle, params)
	if err != nil {
		return err
	}
	response := make([]Vehicle, len(items))
	for i, item := range items {
		mileage := decimal.Zero
		if item.Mileage != nil {
			mileage = *item.Mileage
		}
		response[i] = Vehicle{
			ID:          fromUUID(item.ID),
			PlateNumber: item.Identifier,
			Model:       item.Name,
			MileageKm:   mileage,
			Status:      item.Status.Label(resource.Vehicle),
			IsActive:    item.IsActive,
			Version:     item.Version,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) CreateDriver(ctx echo.Context) error {
	var req CreateDriverRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	driverID := kernel.NewUUID()
	cmd, err := commands.NewCreateDriverCommand(driverID, req.Name, req.LicenseNumber)
	if err != nil {
		return err
	}
	if err = s.h.CreateDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, IDResponse{ID: fromUUID(driverID)})
}

func (s *Server) CreateVehicle(ctx echo.Context) error {
	var req CreateVehicleRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	mileage, err := kernel.NewDistance(req.MileageKm)
	if err != nil {
		return err
	}

	vehicleID := kernel.NewUUID()
	cmd, err := commands.NewCreateVehicleCommand(vehicleID, req.PlateNumber, req.Model, mileage)
	if err != nil {
		return err
	}
	if err = s.h.CreateVehicle.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, IDResponse{ID: fromUUID(vehicleID)})
}

func (s *Server) SetDriverAvailability(ctx echo.Context, id openapi_types.UUID) error {
	return s.setAvailability(ctx, resource.Driver, id)
}

func (s *Server) SetVehicleAvailability(ctx echo.Context, id openapi_types.UUID) error {
	return s.setAvailability(ctx, resource.Vehicle, id)
}

func (s *Server) SetDriverActive(ctx echo.Context, id openapi_types.UUID) error {
	return s.setActive(ctx, resource.Driver, id)
}

func (s *Server) SetVehicleActive(ctx echo.Context, id openapi_types.UUID) error {
	return s.setActive(ctx, resource.Vehicle, id)
}

func (s *Server) listResources(
	ctx echo.Context,
	kind resource.Kind,
	params ListResourcesParams,
) ([]queries.ListResourcesQueryResponse, error) {
	var status *resource.Status
	if params.Status != nil {
		parsed, err := resource.ParseStatus(kind, *params.Status)
		if err != nil {
			return nil, err
		}
		status = &parsed
	}
	activeOnly := params.ActiveOnly != nil && *params.ActiveOnly

	query, err := queries.NewListResourcesQuery(kind, status, activeOnly)
	if err != nil {
		return nil, err
	}
	return s.h.ListResources.Handle(ctx.Request().Context(), query)
}

// setAvailability covers operator changes only; allocation is owned by tours
// and is refused by the command.
func (s *Server) setAvailability(ctx echo.Context, kind resource.Kind, id openapi_types.UUID) error {
	resourceID, err := toUUID(id)
	if err != nil {
		return err
	}
	var req SetAvailabilityRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}
	status, err := resource.ParseStatus(kind, req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSetResourceAvailabilityCommand(kind, resourceID, status)
	if err != nil {
		return err
	}
	if err = s.h.SetResourceAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) setActive(ctx echo.Context, kind resource.Kind, id openapi_types.UUID) error {
	resourceID, err := toUUID(id)
	if err != nil {
		return err
	}
	var req SetActiveRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSetResourceActiveCommand(kind, resourceID, *req.Active)
	if err != nil {
		return err
	}
	if err = s.h.SetResourceActive.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists every operation of openapi.yaml.
type ServerInterface interface {
	ListTours(ctx echo.Context, params ListToursParams) error
	CreateTour(ctx echo.Context) error
	GetTour(ctx echo.Context, id openapi_types.UUID) error
	UpdateTour(ctx echo.Context, id openapi_types.UUID) error
	DeleteTour(ctx echo.Context, id openapi_types.UUID) error
	StartTour(ctx echo.Context, id openapi_types.UUID) error
	CompleteTour(ctx echo.Context, id openapi_types.UUID) error
	CancelTour(ctx echo.Context, id openapi_types.UUID) error

	CreateShipment(ctx echo.Context) error
	GetShipment(ctx echo.Context, id openapi_types.UUID) error
	DeleteShipment(ctx echo.Context, id openapi_types.UUID) error
	UpdateShipmentStatus(ctx echo.Context, id openapi_types.UUID) error
	GetShipmentTransitions(ctx echo.Context, id openapi_types.UUID) error
	MarkShipmentInvoiced(ctx echo.Context, id openapi_types.UUID) error

	CreateIncident(ctx echo.Context) error
	ChangeIncidentStatus(ctx echo.Context, id openapi_types.UUID) error
	ResolveIncident(ctx echo.Context, id openapi_types.UUID) error

	ListDrivers(ctx echo.Context, params ListResourcesParams) error
	CreateDriver(ctx echo.Context) error
	SetDriverAvailability(ctx echo.Context, id openapi_types.UUID) error
	SetDriverActive(ctx echo.Context, id openapi_types.UUID) error

	ListVehicles(ctx echo.Context, params ListResourcesParams) error
	CreateVehicle(ctx echo.Context) error
	SetVehicleAvailability(ctx echo.Context, id openapi_types.UUID) error
	SetVehicleActive(ctx echo.Context, id openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to typed parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

type idOperation func(ctx echo.Context, id openapi_types.UUID) error

// withID binds the "id" path parameter before calling op.
func (w *ServerInterfaceWrapper) withID(op idOperation) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var id openapi_types.UUID
		err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
		}
		return op(ctx, id)
	}
}

func (w *ServerInterfaceWrapper) ListTours(ctx echo.Context) error {
	var params ListToursParams

	if err := runtime.BindQueryParameter("form", true, false, "date", ctx.QueryParams(), &params.Date); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter date: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	return w.Handler.ListTours(ctx, params)
}

func (w *ServerInterfaceWrapper) listResources(op func(echo.Context, ListResourcesParams) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var params ListResourcesParams

		if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
		}
		if err := runtime.BindQueryParameter("form", true, false, "activeOnly", ctx.QueryParams(), &params.ActiveOnly); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter activeOnly: %s", err))
		}

		return op(ctx, params)
	}
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/api/v1/tours", w.ListTours)
	router.POST(baseURL+"/api/v1/tours", si.CreateTour)
	router.GET(baseURL+"/api/v1/tours/:id", w.withID(si.GetTour))
	router.PATCH(baseURL+"/api/v1/tours/:id", w.withID(si.UpdateTour))
	router.DELETE(baseURL+"/api/v1/tours/:id", w.withID(si.DeleteTour))
	router.POST(baseURL+"/api/v1/tours/:id/start", w.withID(si.StartTour))
	router.POST(baseURL+"/api/v1/tours/:id/complete", w.withID(si.CompleteTour))
	router.POST(baseURL+"/api/v1/tours/:id/cancel", w.withID(si.CancelTour))

	router.POST(baseURL+"/api/v1/shipments", si.CreateShipment)
	router.GET(baseURL+"/api/v1/shipments/:id", w.withID(si.GetShipment))
	router.DELETE(baseURL+"/api/v1/shipments/:id", w.withID(si.DeleteShipment))
	router.PATCH(baseURL+"/api/v1/shipments/:id/status", w.withID(si.UpdateShipmentStatus))
	router.GET(baseURL+"/api/v1/shipments/:id/transitions", w.withID(si.GetShipmentTransitions))
	router.POST(baseURL+"/api/v1/shipments/:id/invoice", w.withID(si.MarkShipmentInvoiced))

	router.POST(baseURL+"/api/v1/incidents", si.CreateIncident)
	router.PATCH(baseURL+"/api/v1/incidents/:id/status", w.withID(si.ChangeIncidentStatus))
	router.POST(baseURL+"/api/v1/incidents/:id/resolve", w.withID(si.ResolveIncident))

	router.GET(baseURL+"/api/v1/drivers", w.listResources(si.ListDrivers))
	router.POST(baseURL+"/api/v1/drivers", si.CreateDriver)
	router.PATCH(baseURL+"/api/v1/drivers/:id/availability", w.withID(si.SetDriverAvailability))
	router.PATCH(baseURL+"/api/v1/drivers/:id/active", w.withID(si.SetDriverActive))

	router.GET(baseURL+"/api/v1/vehicles", w.listResources(si.ListVehicles))
	router.POST(baseURL+"/api/v1/vehicles", si.CreateVehicle)
	router.PATCH(baseURL+"/api/v1/vehicles/:id/availability", w.withID(si.SetVehicleAvailability))
	router.PATCH(baseURL+"/api/v1/vehicles/:id/active", w.withID(si.SetVehicleActive))
}

// Package http is the REST adapter: echo handlers that turn requests into
// commands and queries and map their results and errors back to JSON.
package http

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// CommandHandler is implemented by every handler in the commands package.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler is implemented by every handler in the queries package.
type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	CreateTour   CommandHandler[commands.CreateTourCommand]
	UpdateTour   CommandHandler[commands.UpdateTourCommand]
	StartTour    CommandHandler[commands.StartTourCommand]
	CompleteTour CommandHandler[commands.CompleteTourCommand]
	CancelTour   CommandHandler[commands.CancelTourCommand]
	DeleteTour   CommandHandler[commands.DeleteTourCommand]

	CreateShipment       CommandHandler[commands.CreateShipmentCommand]
	UpdateShipmentStatus CommandHandler[commands.UpdateShipmentStatusCommand]
	MarkShipmentInvoiced CommandHandler[commands.MarkShipmentInvoicedCommand]
	DeleteShipment       CommandHandler[commands.DeleteShipmentCommand]

	CreateIncident       CommandHandler[commands.CreateIncidentCommand]
	ChangeIncidentStatus CommandHandler[commands.ChangeIncidentStatusCommand]
	ResolveIncident      CommandHandler[commands.ResolveIncidentCommand]

	CreateDriver            CommandHandler[commands.CreateDriverCommand]
	CreateVehicle           CommandHandler[commands.CreateVehicleCommand]
	SetResourceAvailability CommandHandler[commands.SetResourceAvailabilityCommand]
	SetResourceActive       CommandHandler[commands.SetResourceActiveCommand]

	GetTour                QueryHandler[queries.GetTourQuery, queries.GetTourQueryResponse]
	ListTours              QueryHandler[queries.ListToursQuery, []queries.ListToursQueryResponse]
	GetShipment            QueryHandler[queries.GetShipmentQuery, queries.GetShipmentQueryResponse]
	GetShipmentTransitions QueryHandler[queries.GetShipmentTransitionsQuery, queries.GetShipmentTransitionsQueryResponse]
	ListResources          QueryHandler[queries.ListResourcesQuery, []queries.ListResourcesQueryResponse]
}

// Server implements ServerInterface.
type Server struct {
	h Handlers
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

// bind decodes the body into dst and runs the struct validator.
func bind(ctx echo.Context, dst any) error {
	if err := ctx.Bind(dst); err != nil {
		return err
	}
	return ctx.Validate(dst)
}

func toUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toUUIDs(ids []openapi_types.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		k, err := toUUID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

func toOptionalUUID(id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	k, err := toUUID(*id)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func fromUUID(id kernel.UUID) openapi_types.UUID {
	return id.Bytes()
}

package http

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type IDResponse struct {
	ID openapi_types.UUID `json:"id"`
}

type ListToursParams struct {
	Date   *openapi_types.Date `form:"date" json:"date,omitempty"`
	Status *string             `form:"status" json:"status,omitempty"`
}

type ListResourcesParams struct {
	Status     *string `form:"status" json:"status,omitempty"`
	ActiveOnly *bool   `form:"activeOnly" json:"activeOnly,omitempty"`
}

type PlannedRoute struct {
	StartLocation            string          `json:"startLocation" validate:"required,max=255"`
	EndLocation              string          `json:"endLocation" validate:"required,max=255"`
	EstimatedDistanceKm      decimal.Decimal `json:"estimatedDistanceKm"`
	EstimatedDurationMinutes int             `json:"estimatedDurationMinutes" validate:"gte=0"`
}

type ActualRoute struct {
	StartTime  *time.Time      `json:"startTime,omitempty"`
	EndTime    *time.Time      `json:"endTime,omitempty"`
	DistanceKm decimal.Decimal `json:"distanceKm"`
}

type CreateTourRequest struct {
	DriverID     openapi_types.UUID   `json:"driverId" validate:"required"`
	VehicleID    openapi_types.UUID   `json:"vehicleId" validate:"required"`
	ShipmentIDs  []openapi_types.UUID `json:"shipmentIds" validate:"required,min=1,dive,required"`
	Date         openapi_types.Date   `json:"date"`
	PlannedRoute PlannedRoute         `json:"plannedRoute"`
	Notes        string               `json:"notes,omitempty" validate:"max=2000"`
}

// UpdateTourRequest is a partial update; omitted fields stay unchanged.
type UpdateTourRequest struct {
	Date         *openapi_types.Date  `json:"date,omitempty"`
	PlannedRoute *PlannedRoute        `json:"plannedRoute,omitempty"`
	Notes        *string              `json:"notes,omitempty" validate:"omitempty,max=2000"`
	ShipmentIDs  []openapi_types.UUID `json:"shipmentIds,omitempty" validate:"omitempty,min=1,dive,required"`
}

type CompleteTourRequest struct {
	ActualRoute         ActualRoute `json:"actualRoute"`
	DeliveriesCompleted int         `json:"deliveriesCompleted" validate:"gte=0"`
	DeliveriesFailed    int         `json:"deliveriesFailed" validate:"gte=0"`
	Notes               *string     `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type CancelTourRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=1000"`
}

type Tour struct {
	ID                  openapi_types.UUID   `json:"id"`
	Number              string               `json:"number"`
	Date                openapi_types.Date   `json:"date"`
	DriverID            openapi_types.UUID   `json:"driverId"`
	VehicleID           openapi_types.UUID   `json:"vehicleId"`
	ShipmentIDs         []openapi_types.UUID `json:"shipmentIds"`
	Status              string               `json:"status"`
	PlannedRoute        PlannedRoute         `json:"plannedRoute"`
	ActualRoute         *ActualRoute         `json:"actualRoute,omitempty"`
	DeliveriesCompleted int                  `json:"deliveriesCompleted"`
	DeliveriesFailed    int                  `json:"deliveriesFailed"`
	Notes               string               `json:"notes,omitempty"`
	CancellationReason  string               `json:"cancellationReason,omitempty"`
	CreatedAt           time.Time            `json:"createdAt"`
	StartedAt           *time.Time           `json:"startedAt,omitempty"`
	CompletedAt         *time.Time           `json:"completedAt,omitempty"`
	Version             int                  `json:"version"`
}

type TourSummary struct {
	ID            openapi_types.UUID `json:"id"`
	Number        string             `json:"number"`
	Date          openapi_types.Date `json:"date"`
	DriverID      openapi_types.UUID `json:"driverId"`
	VehicleID     openapi_types.UUID `json:"vehicleId"`
	Status        string             `json:"status"`
	ShipmentCount int                `json:"shipmentCount"`
}

type CreateShipmentRequest struct {
	TrackingNumber string          `json:"trackingNumber,omitempty" validate:"omitempty,max=64"`
	RecipientName  string          `json:"recipientName" validate:"required,max=255"`
	Destination    string          `json:"destination" validate:"required"`
	WeightKg       decimal.Decimal `json:"weightKg"`
}

type UpdateShipmentStatusRequest struct {
	Status      string `json:"status" validate:"required"`
	Location    string `json:"location,omitempty" validate:"max=255"`
	Description string `json:"description,omitempty"`
}

type TrackingEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
	Event       string    `json:"event"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	UpdatedBy   string    `json:"updatedBy,omitempty"`
}

type Shipment struct {
	ID                 openapi_types.UUID  `json:"id"`
	TrackingNumber     string              `json:"trackingNumber"`
	RecipientName      string              `json:"recipientName"`
	Destination        string              `json:"destination"`
	WeightKg           decimal.Decimal     `json:"weightKg"`
	Status             string              `json:"status"`
	TourID             *openapi_types.UUID `json:"tourId,omitempty"`
	IsInvoiced         bool                `json:"isInvoiced"`
	ActualDeliveryDate *time.Time          `json:"actualDeliveryDate,omitempty"`
	Version            int                 `json:"version"`
	TrackingHistory    []TrackingEntry     `json:"trackingHistory"`
}

type ShipmentTransitions struct {
	Current string   `json:"current"`
	Allowed []string `json:"allowed"`
}

type CreateIncidentRequest struct {
	Type        string              `json:"type" validate:"required"`
	Description string              `json:"description" validate:"required"`
	ShipmentID  *openapi_types.UUID `json:"shipmentId,omitempty"`
	TourID      *openapi_types.UUID `json:"tourId,omitempty"`
	VehicleID   *openapi_types.UUID `json:"vehicleId,omitempty"`
	DriverID    *openapi_types.UUID `json:"driverId,omitempty"`
}

type ChangeIncidentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ResolveIncidentRequest struct {
	Resolution string `json:"resolution" validate:"required"`
}

type CreateDriverRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	LicenseNumber string `json:"licenseNumber" validate:"required,max=64"`
}

type CreateVehicleRequest struct {
	PlateNumber string          `json:"plateNumber" validate:"required,max=32"`
	Model       string          `json:"model,omitempty" validate:"max=255"`
	MileageKm   decimal.Decimal `json:"mileageKm"`
}

type SetAvailabilityRequest struct {
	Status string `json:"status" validate:"required"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type Driver struct {
	ID            openapi_types.UUID `json:"id"`
	Name          string             `json:"name"`
	LicenseNumber string             `json:"licenseNumber"`
	Status        string             `json:"status"`
	IsActive      bool               `json:"isActive"`
	Version       int                `json:"version"`
}

type Vehicle struct {
	ID          openapi_types.UUID `json:"id"`
	PlateNumber string             `json:"plateNumber"`
	Model       string             `json:"model,omitempty"`
	MileageKm   decimal.Decimal    `json:"mileageKm"`
	Status      string             `json:"status"`
	IsActive    bool               `json:"isActive"`
	Version     int                `json:"version"`
}

package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetShipmentQueryHandler struct {
	db *gorm.DB
}

func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var (
		resp   GetShipmentQueryResponse
		id     uuid.UUID
		tourID uuid.NullUUID
		status int
	)
	err := db.Raw(`
		SELECT
			id,
			tracking_number,
			recipient_name,
			destination,
			weight,
			status,
			tour_id,
			is_invoiced,
			actual_delivery_date,
			version
		FROM shipments
		WHERE id = ?
	`, query.ID().Bytes()).Row().Scan(
		&id,
		&resp.TrackingNumber,
		&resp.RecipientName,
		&resp.Destination,
		&resp.Weight,
		&status,
		&tourID,
		&resp.IsInvoiced,
		&resp.ActualDeliveryDate,
		&resp.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetShipmentQueryResponse{}, errs.NewObjectNotFoundErrorWithCause("shipment", query.ID().String(), err)
	}
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if tourID.Valid {
		ref, refErr := kernel.UUIDFromBytes(tourID.UUID[:])
		if refErr != nil {
			return GetShipmentQueryResponse{}, refErr
		}
		resp.TourID = &ref
	}
	resp.Status = shipment.Status(status)

	rows, err := db.Raw(`
		SELECT
			timestamp,
			status,
			event,
			location,
			description,
			actor
		FROM tracking_entries
		WHERE shipment_id = ?
		ORDER BY seq
	`, query.ID().Bytes()).Rows()
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	defer rows.Close()

	resp.History = make([]TrackingEntryView, 0)
	for rows.Next() {
		var (
			entry                        TrackingEntryView
			entryStatus, event           int
			location, description, actor sql.NullString
		)
		if err = rows.Scan(&entry.Timestamp, &entryStatus, &event, &location, &description, &actor); err != nil {
			return GetShipmentQueryResponse{}, err
		}
		entry.Status = shipment.Status(entryStatus)
		entry.Event = shipment.Event(event)
		entry.Location = location.String
		entry.Description = description.String
		entry.Actor = actor.String
		resp.History = append(resp.History, entry)
	}
	if err = rows.Err(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	return resp, nil
}

package shipmentrepo

import (
	"context"

	"dispatch/internal/adapters/out/postgres/pgutil"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment together with its history.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.TranslateInsert(err, "shipment", "tracking number "+dto.TrackingNumber+" is already in use")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the shipment row under the version check and appends the history
// entries that are not stored yet.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&ShipmentDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"recipient_name":       dto.RecipientName,
			"destination":          dto.Destination,
			"weight":               dto.Weight,
			"status":               dto.Status,
			"tour_id":              dto.TourID,
			"is_invoiced":          dto.IsInvoiced,
			"actual_delivery_date": dto.ActualDeliveryDate,
			"version":              gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if err := pgutil.VersionedUpdateResult(ctx, r.db, &ShipmentDTO{}, "shipment", dto.ID, result.RowsAffected); err != nil {
		return err
	}

	if len(dto.History) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.History).Error; err != nil {
			return err
		}
	}

	aggregate.BumpVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.get(ctx, id, false)
}

func (r *GormShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.get(ctx, id, true)
}

// GetEligibleForTour locks the rows in id order so that concurrent dispatches
// over overlapping shipment sets cannot deadlock.
func (r *GormShipmentRepository) GetEligibleForTour(ctx context.Context, ids []kernel.UUID) ([]*shipment.Shipment, error) {
	if len(ids) == 0 {
		return []*shipment.Shipment{}, nil
	}

	statuses := make([]int, 0, len(shipment.TourEligibleStatuses()))
	for _, s := range shipment.TourEligibleStatuses() {
		statuses = append(statuses, int(s))
	}

	return r.find(ctx, r.locked(ctx).
		Where("id IN ?", rawIDs(ids)).
		Where("tour_id IS NULL AND NOT is_invoiced").
		Where("status IN ?", statuses))
}

func (r *GormShipmentRepository) GetByIDsForUpdate(ctx context.Context, ids []kernel.UUID) ([]*shipment.Shipment, error) {
	if len(ids) == 0 {
		return []*shipment.Shipment{}, nil
	}
	return r.find(ctx, r.locked(ctx).Where("id IN ?", rawIDs(ids)))
}

func (r *GormShipmentRepository) GetByTour(ctx context.Context, tourID kernel.UUID) ([]*shipment.Shipment, error) {
	if err := tourID.Validate(); err != nil {
		return nil, err
	}
	return r.find(ctx, r.locked(ctx).Where("tour_id = ?", tourID.Bytes()))
}

// Delete removes the shipment; its history goes with it through the cascade.
func (r *GormShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ShipmentDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pgutil.NotFound(gorm.ErrRecordNotFound, "shipment", id.String())
	}
	return nil
}

func (r *GormShipmentRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx)
	if forUpdate {
		query = r.locked(ctx)
	}

	var dto ShipmentDTO
	if err := query.Preload("History", orderedHistory).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgutil.NotFound(err, "shipment", id.String())
	}

	return toDomain(dto)
}

func (r *GormShipmentRepository) locked(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
}

func (r *GormShipmentRepository) find(_ context.Context, query *gorm.DB) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	if err := query.Preload("History", orderedHistory).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}
	return shipments, nil
}

func orderedHistory(db *gorm.DB) *gorm.DB {
	return db.Order("seq")
}

func rawIDs(ids []kernel.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Bytes())
	}
	return out
}

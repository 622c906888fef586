package tourrepo

import (
	"context"

	"dispatch/internal/adapters/out/postgres/pgutil"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tour"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTourRepository implements ports.TourRepository using GORM.
type GormTourRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormTourRepository(db *gorm.DB, tracker aggregateTracker) *GormTourRepository {
	return &GormTourRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormTourRepository) Add(ctx context.Context, aggregate *tour.Tour) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.TranslateInsert(err, "tour "+dto.Number, "already exists")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the tour when the stored version still matches the aggregate.
func (r *GormTourRepository) Update(ctx context.Context, aggregate *tour.Tour) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	stored := dto.Version
	dto.Version++

	result := r.db.WithContext(ctx).
		Model(&TourDTO{}).
		Select("*").
		Omit("id", "number", "created_at").
		Where("id = ? AND version = ?", dto.ID, stored).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if err := pgutil.VersionedUpdateResult(ctx, r.db, &TourDTO{}, "tour", dto.ID, result.RowsAffected); err != nil {
		return err
	}

	aggregate.BumpVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTourRepository) Get(ctx context.Context, id kernel.UUID) (*tour.Tour, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

func (r *GormTourRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*tour.Tour, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormTourRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&TourDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pgutil.NotFound(gorm.ErrRecordNotFound, "tour", id.String())
	}
	return nil
}

func (r *GormTourRepository) get(_ context.Context, query *gorm.DB, id kernel.UUID) (*tour.Tour, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TourDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgutil.NotFound(err, "tour", id.String())
	}

	return toDomain(dto)
}

package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/pgutil"
	"dispatch/internal/adapters/out/postgres/vehiclerepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormResourceRegistry implements ports.ResourceRegistry.
//
// TryAllocate is one conditional UPDATE on the resource row followed by an insert into
// resource_allocations. Under READ COMMITTED a competing transaction blocks on the row
// and re-evaluates the predicate once the first one commits, so exactly one of two
// concurrent claims on an available resource wins and the other gets ErrConflict.
type GormResourceRegistry struct {
	db *gorm.DB
}

func NewGormResourceRegistry(db *gorm.DB) *GormResourceRegistry {
	return &GormResourceRegistry{db: db}
}

func (r *GormResourceRegistry) TryAllocate(ctx context.Context, claim resource.Claim) error {
	if err := claim.Validate(); err != nil {
		return err
	}
	table, err := tableFor(claim.Kind)
	if err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	result := db.Table(table).
		Where("id = ? AND status = ? AND is_active", claim.ResourceID.Bytes(), int(claim.Expected)).
		Updates(map[string]any{
			"status":  int(claim.New),
			"version": gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.explainRefusal(ctx, table, claim)
	}

	dto := AllocationDTO{
		Kind:        int(claim.Kind),
		ResourceID:  claim.ResourceID.Bytes(),
		TourID:      claim.TourID.Bytes(),
		AllocatedAt: time.Now().UTC(),
	}
	if err = db.Create(&dto).Error; err != nil {
		return pgutil.TranslateInsert(err, claim.Kind.String()+" "+claim.ResourceID.String(), "is already allocated")
	}
	return nil
}

func (r *GormResourceRegistry) Release(
	ctx context.Context,
	kind resource.Kind,
	resourceID kernel.UUID,
	tourID kernel.UUID,
	newStatus resource.Status,
) error {
	if err := errors.Join(kind.Validate(), resourceID.Validate(), tourID.Validate(), newStatus.Validate()); err != nil {
		return err
	}
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	deleted := db.Where("kind = ? AND resource_id = ? AND tour_id = ?", int(kind), resourceID.Bytes(), tourID.Bytes()).
		Delete(&AllocationDTO{})
	if deleted.Error != nil {
		return deleted.Error
	}
	if deleted.RowsAffected == 0 {
		return nil
	}

	return db.Table(table).
		Where("id = ? AND status = ?", resourceID.Bytes(), int(resource.Allocated)).
		Updates(map[string]any{
			"status":  int(newStatus),
			"version": gorm.Expr("version + 1"),
		}).Error
}

func (r *GormResourceRegistry) Allocations(ctx context.Context) ([]resource.Allocation, error) {
	var dtos []AllocationDTO
	if err := r.db.WithContext(ctx).Order("allocated_at").Find(&dtos).Error; err != nil {
		return nil, err
	}

	allocations := make([]resource.Allocation, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}
	return allocations, nil
}

// explainRefusal turns a conditional update that matched nothing into NotFound or Conflict.
func (r *GormResourceRegistry) explainRefusal(ctx context.Context, table string, claim resource.Claim) error {
	var row struct {
		Status   int
		IsActive bool
	}
	result := r.db.WithContext(ctx).Table(table).Select("status", "is_active").
		Where("id = ?", claim.ResourceID.Bytes()).Limit(1).Scan(&row)
	if result.Error != nil {
		return result.Error
	}
	subject := claim.Kind.String() + " " + claim.ResourceID.String()
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(claim.Kind.String(), claim.ResourceID.String())
	}
	if !row.IsActive {
		return errs.NewConflictError(subject, "is not active")
	}
	return errs.NewConflictError(subject, fmt.Sprintf("is %s, not %s",
		resource.Status(row.Status).Label(claim.Kind), claim.Expected.Label(claim.Kind)))
}

func tableFor(kind resource.Kind) (string, error) {
	switch kind {
	case resource.Driver:
		return driverrepo.DriverDTO{}.TableName(), nil
	case resource.Vehicle:
		return vehiclerepo.VehicleDTO{}.TableName(), nil
	case resource.UnknownKind:
		return "", kind.Validate()
	default:
		return "", kind.Validate()
	}
}

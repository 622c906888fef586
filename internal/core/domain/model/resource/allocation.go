package resource

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAllocationIsNotConstructed = errors.New("Allocation must be created via NewAllocation constructor")

// Allocation binds one resource to the tour currently holding it.
type Allocation struct {
	kind        Kind
	resourceID  kernel.UUID
	tourID      kernel.UUID
	allocatedAt time.Time
	guard       guard.ConstructorGuard
}

func NewAllocation(kind Kind, resourceID, tourID kernel.UUID, allocatedAt time.Time) (Allocation, error) {
	if err := errors.Join(kind.Validate(), resourceID.Validate(), tourID.Validate()); err != nil {
		return Allocation{}, err
	}
	return Allocation{
		kind:        kind,
		resourceID:  resourceID,
		tourID:      tourID,
		allocatedAt: allocatedAt.UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (a Allocation) Validate() error {
	return a.guard.Validate(ErrAllocationIsNotConstructed)
}

func (a Allocation) Kind() Kind              { return a.kind }
func (a Allocation) ResourceID() kernel.UUID { return a.resourceID }
func (a Allocation) TourID() kernel.UUID     { return a.tourID }
func (a Allocation) AllocatedAt() time.Time  { return a.allocatedAt }

// Claim is a compare-and-set request against the resource registry:
// move ResourceID from Expected to New and record TourID as the holder.
type Claim struct {
	Kind       Kind
	ResourceID kernel.UUID
	TourID     kernel.UUID
	Expected   Status
	New        Status
}

// NewAllocationClaim returns the Available -> Allocated claim used by tour dispatch.
func NewAllocationClaim(kind Kind, resourceID, tourID kernel.UUID) Claim {
	return Claim{Kind: kind, ResourceID: resourceID, TourID: tourID, Expected: Available, New: Allocated}
}

func (c Claim) Validate() error {
	return errors.Join(
		c.Kind.Validate(),
		c.ResourceID.Validate(),
		c.TourID.Validate(),
		c.Expected.Validate(),
		c.New.Validate(),
	)
}

package commands

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"
)

// LockKey names the dispatch lock of one resource, e.g. "driver:7f1c...".
func LockKey(kind resource.Kind, id kernel.UUID) string {
	return kind.String() + ":" + id.String()
}

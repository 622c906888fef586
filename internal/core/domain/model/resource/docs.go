// Package resource models the availability of the two allocatable resources of a
// tour: drivers and vehicles.
//
// Both kinds share one availability machine with kind-specific labels:
//
//	Available ──Allocate──> Allocated (driver "on_tour", vehicle "in_use")
//	    ^                       │
//	    └────────Release────────┘
//
//	Available <──> Resting (driver "off_duty", vehicle "maintenance") <──> OutOfService
//
// Only tour allocation may enter or leave Allocated. An Allocation records which
// tour currently holds a resource; at most one allocation exists per resource.
package resource

// Package guard provides ConstructorGuard, a marker embedded in value objects,
// entities and commands to tell instances built by their constructor apart from
// zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing struct was built by its constructor.
// The zero value is "not constructed".
//
// Example:
//
//	type Route struct {
//	    start string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewRoute(start string) Route {
//	    return Route{start: start, guard: guard.NewConstructorGuard()}
//	}
//
//	func (r Route) Validate() error {
//	    return r.guard.Validate(ErrRouteIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard and validationError otherwise
// (ErrDefaultConstructorGuard when validationError is nil).
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

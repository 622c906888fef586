// Package kernel provides the shared value objects of the dispatch domain.
//
// The package includes:
//   - UUID: identity of every aggregate, with validation and comparison
//   - Distance: a non-negative kilometre value backed by a decimal, used for routes and mileage
//
// Both are immutable and must be created through their constructors; zero values fail Validate.
package kernel

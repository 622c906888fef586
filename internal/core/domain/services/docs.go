// Package services provides domain services that coordinate several aggregates of the
// dispatch domain.
//
// The package includes:
//   - TourDispatcher: checks driver, vehicle and shipment eligibility for a tour and binds shipments
//   - TourSettlement: applies completion to the vehicle mileage and to every bound shipment
//
// The services are pure: they never load or store anything. Command handlers load the
// aggregates inside a unit of work, call the service, then persist the result.
package services

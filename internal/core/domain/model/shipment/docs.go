// Package shipment implements the shipment ledger: the Shipment aggregate, its status
// machine and its append-only tracking history.
//
// The package includes:
//   - Shipment: the aggregate root owning status, history, tour binding and the invoiced gate
//   - Status: the edge table for manual transitions and the tour eligibility rule
//   - TrackingEntry: one immutable audit entry, tagged with the Event that caused it
//
// Key business rules:
//   - Manual updates may only follow an edge of the table; illegal edges leave the shipment unchanged
//   - Tour assignment moves an eligible shipment (pending, picked_up, in_transit) to in_transit
//   - Tour completion infers the final status from the last recorded status
//   - Incidents force failed_delivery through a separate override that never touches terminal shipments
package shipment

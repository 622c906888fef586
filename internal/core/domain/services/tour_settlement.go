package services

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/core/domain/model/tour"
	"dispatch/internal/core/domain/model/vehicle"
)

// SettlementReport lists the outcome for every shipment bound to a completed tour.
type SettlementReport struct {
	Delivered []kernel.UUID
	Failed    []kernel.UUID
	Skipped   []kernel.UUID
}

// TourSettlement resolves shipment outcomes and vehicle mileage when a tour completes.
//
// The tour carries no per-shipment delivery outcome, so each shipment's final status is
// inferred from its last recorded status: out_for_delivery becomes delivered, anything
// else becomes failed_delivery. Only shipments already delivered are skipped.
type TourSettlement struct{}

func NewTourSettlement() TourSettlement {
	return TourSettlement{}
}

// Settle must be called after t.Complete succeeded.
func (s TourSettlement) Settle(
	t *tour.Tour,
	v *vehicle.Vehicle,
	shipments []*shipment.Shipment,
	note shipment.Note,
) (SettlementReport, error) {
	var report SettlementReport

	if route := t.ActualRoute(); route != nil {
		if err := v.RecordTrip(route.ActualDistance()); err != nil {
			return SettlementReport{}, err
		}
	}

	for _, sh := range shipments {
		outcome, settled, err := sh.Settle(t.Number(), note)
		if err != nil {
			return SettlementReport{}, err
		}
		switch {
		case !settled:
			report.Skipped = append(report.Skipped, sh.ID())
		case outcome == shipment.Delivered:
			report.Delivered = append(report.Delivered, sh.ID())
		default:
			report.Failed = append(report.Failed, sh.ID())
		}
	}
	return report, nil
}

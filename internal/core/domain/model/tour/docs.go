// Package tour implements the DeliveryTour aggregate: planning, dispatch, completion
// and cancellation of one day's run, plus the planned and actual route value objects.
//
// The aggregate only guards its own state. Allocating the driver and vehicle and
// binding shipments is coordinated by the dispatch service and the command handlers.
package tour

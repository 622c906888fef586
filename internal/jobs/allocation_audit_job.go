package jobs

import (
	"context"
	"time"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DefaultAuditSchedule runs the audit at the start of every fifth minute.
const DefaultAuditSchedule = "0 */5 * * * *"

// AnomalyFinder is satisfied by queries.GetAllocationAnomaliesQueryHandler.
type AnomalyFinder interface {
	Handle(ctx context.Context, query queries.GetAllocationAnomaliesQuery) ([]queries.GetAllocationAnomaliesQueryResponse, error)
}

// AllocationAuditJob periodically cross-checks allocations against tours and
// resource statuses and logs every mismatch. It reports only and never repairs.
type AllocationAuditJob struct {
	finder   AnomalyFinder
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   logrus.FieldLogger
}

// NewAllocationAuditJob uses DefaultAuditSchedule when schedule is empty.
// The schedule takes six fields, seconds first.
func NewAllocationAuditJob(finder AnomalyFinder, schedule string, logger logrus.FieldLogger) *AllocationAuditJob {
	if schedule == "" {
		schedule = DefaultAuditSchedule
	}
	return &AllocationAuditJob{
		finder:   finder,
		schedule: schedule,
		timeout:  30 * time.Second,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.WithField("component", "allocation_audit_job"),
	}
}

// RunOnce performs a single audit and returns what it found.
func (j *AllocationAuditJob) RunOnce(ctx context.Context) ([]queries.GetAllocationAnomaliesQueryResponse, error) {
	anomalies, err := j.finder.Handle(ctx, queries.NewGetAllocationAnomaliesQuery())
	if err != nil {
		return nil, err
	}

	for _, a := range anomalies {
		entry := j.logger.WithFields(logrus.Fields{
			"reason":      string(a.Reason),
			"kind":        a.Kind.String(),
			"resource_id": a.ResourceID.String(),
		})
		if a.TourID != nil {
			entry = entry.WithField("tour_id", a.TourID.String())
		}
		entry.Warn("allocation anomaly")
	}
	if len(anomalies) == 0 {
		j.logger.Debug("allocations consistent")
	}
	return anomalies, nil
}

func (j *AllocationAuditJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.WithError(err).Error("allocation audit failed")
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.WithField("schedule", j.schedule).Info("allocation audit job started")
	return nil
}

// Stop waits for a running audit to finish.
func (j *AllocationAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("allocation audit job stopped")
}

// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are cron based (github.com/robfig/cron/v3, six-field expressions with
// a leading seconds field) and are driven through JobManager:
//
//	audit := jobs.NewAllocationAuditJob(anomaliesHandler, cfg.AuditSchedule, logger)
//	manager := jobs.NewJobManager(audit)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// # Allocation audit
//
// AllocationAuditJob re-checks that every driver and vehicle is held by at most
// one planned or in-progress tour and that resource statuses agree with the
// allocation table. Each mismatch is logged as a warning; nothing is repaired.
// Overlapping runs are skipped.
package jobs

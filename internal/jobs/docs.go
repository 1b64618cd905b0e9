// Package jobs provides scheduled background tasks of the production service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, with a seconds field) and skip a tick
// while the previous one is still running.
//
// # Available Jobs
//
// 1. OutboxPublisherJob - publishes committed integration events to the message bus
// 2. PieceAuditJob - compares every piece's cached status and station with its event log
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewOutboxPublisherJob(publishHandler, "*/5 * * * * *", 100, m, logger),
//		jobs.NewPieceAuditJob(rebuildHandler, "0 0 * * * *", 500, m, logger),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Handler errors are logged and counted; the next tick retries. Messages published before a
// bus failure stay acknowledged.
package jobs

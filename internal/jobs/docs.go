// Package jobs provides scheduled background tasks for the board engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to keep the board reconciled with the Orders backend.
//
// # Available Jobs
//
// 1. PollJob - Periodically pulls order snapshots from the Orders service
// 2. PruneJob - Runs every minute to drop served/cancelled orders that aged
// out of the visible window
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(engine, pollSeconds, visibleWindow, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Poll failures are logged and retried on the next tick; the board keeps
// serving its last projection in the meantime
// - Failed job starts will stop any already running jobs
package jobs

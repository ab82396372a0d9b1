package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"orderboard/internal/core/application/sync"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	pollJob  *PollJob
	pruneJob *PruneJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(engine *sync.Engine, pollSeconds int, visibleWindow time.Duration, logger *slog.Logger) *JobManager {
	return &JobManager{
		pollJob:  NewPollJob(engine, pollSeconds, logger),
		pruneJob: NewPruneJob(engine, visibleWindow, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.pollJob.Start(); err != nil {
		return fmt.Errorf("failed to start poll job: %w", err)
	}

	if err := jm.pruneJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.pollJob.Stop()
		return fmt.Errorf("failed to start prune job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pruneJob.Stop()
	jm.pollJob.Stop()
}

package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"orderboard/internal/core/application/sync"
)

// PruneJob removes served and cancelled orders that aged out of the visible
// window. The backend retains every order permanently; pruning only keeps
// the board readable through a shift.
type PruneJob struct {
	engine *sync.Engine
	window time.Duration
	cron   *cron.Cron
	logger *slog.Logger
}

// NewPruneJob creates a prune job for the given visible window.
func NewPruneJob(engine *sync.Engine, window time.Duration, logger *slog.Logger) *PruneJob {
	if window <= 0 {
		window = 2 * time.Hour
	}
	return &PruneJob{
		engine: engine,
		window: window,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "prune_job"),
	}
}

// Start begins the prune job, running once a minute.
func (j *PruneJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		if removed := j.engine.PruneTerminal(j.window); removed > 0 {
			j.logger.InfoContext(context.Background(), "Pruned aged-out orders", "removed", removed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Prune job started", "window", j.window.String())
	return nil
}

// Stop stops the prune job.
func (j *PruneJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Prune job stopped")
}

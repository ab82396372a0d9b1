package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"orderboard/internal/core/application/sync"
)

// PollJob periodically pulls order snapshots from the Orders service. The
// pull feeds the store's version gate, so a tick that brings nothing new
// changes nothing on the board.
type PollJob struct {
	engine   *sync.Engine
	interval int
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPollJob creates a poll job running every interval seconds.
func NewPollJob(engine *sync.Engine, interval int, logger *slog.Logger) *PollJob {
	if interval <= 0 {
		interval = 5
	}
	return &PollJob{
		engine:   engine,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "poll_job"),
	}
}

// Start begins the poll job.
func (j *PollJob) Start() error {
	spec := fmt.Sprintf("*/%d * * * * *", j.interval)
	_, err := j.cron.AddFunc(spec, func() {
		ctx := context.Background()
		if err := j.engine.Pull(ctx); err != nil {
			// the next tick retries; the board serves its last projection
			j.logger.ErrorContext(ctx, "Poll failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Poll job started", "intervalSeconds", j.interval)
	return nil
}

// Stop stops the poll job.
func (j *PollJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Poll job stopped")
}

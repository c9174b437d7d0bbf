package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DispatchJob runs the matcher tick: every interval it offers ready
// unassigned orders to the closest available couriers.
type DispatchJob struct {
	handler      commands.AssignCouriersCommandHandler
	cron         *cron.Cron
	tickInterval int
	logger       *slog.Logger
}

// NewDispatchJob creates the dispatch tick job. tickIntervalSeconds controls
// how often the matcher runs.
func NewDispatchJob(
	handler commands.AssignCouriersCommandHandler,
	tickIntervalSeconds int,
	logger *slog.Logger,
) *DispatchJob {
	return &DispatchJob{
		handler:      handler,
		cron:         cron.New(cron.WithSeconds()),
		tickInterval: tickIntervalSeconds,
		logger:       logger.With("component", "dispatch_job"),
	}
}

// Start schedules the dispatch tick.
// A failed tick is logged and the next tick runs on schedule; per-order
// failures are already isolated inside the handler.
func (j *DispatchJob) Start() error {
	schedule := fmt.Sprintf("@every %ds", j.tickInterval)

	_, err := j.cron.AddFunc(schedule, func() {
		ctx := context.Background()
		cmd := commands.NewAssignCouriersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Dispatch tick failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Dispatch job started", "tickIntervalSeconds", j.tickInterval)
	return nil
}

// Stop stops the dispatch tick.
func (j *DispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch job stopped")
}

// Package scheduler runs periodic health check passes over all routers.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
	"github.com/vadimbarashkov/router-monitor/internal/entity"
)

type checker interface {
	CheckAll(ctx context.Context) (*entity.CheckReport, error)
}

type reconciler interface {
	Reconcile(ctx context.Context) (int64, error)
}

// Scheduler triggers a check pass, followed by like counter reconciliation,
// on a cron schedule. A pass that is still running when the next one is due
// makes the next one skip.
type Scheduler struct {
	cron       *cron.Cron
	checker    checker
	reconciler reconciler
	logger     *slog.Logger
	lifeCtx    context.Context
	lifeCancel context.CancelFunc
}

// New creates a scheduler for spec, a standard cron expression or descriptor
// such as "@every 5m".
func New(spec string, checker checker, reconciler reconciler, logger *slog.Logger) (*Scheduler, error) {
	const op = "scheduler.New"

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	lifeCtx, lifeCancel := context.WithCancel(context.Background())

	s := &Scheduler{
		cron:       c,
		checker:    checker,
		reconciler: reconciler,
		logger:     logger,
		lifeCtx:    lifeCtx,
		lifeCancel: lifeCancel,
	}

	if _, err := c.AddFunc(spec, func() { s.RunOnce(s.lifeCtx) }); err != nil {
		lifeCancel()
		return nil, fmt.Errorf("%s: invalid schedule %q: %w", op, spec, err)
	}

	return s, nil
}

// Start runs the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels the running pass and waits for it to return or for ctx to be done.
func (s *Scheduler) Stop(ctx context.Context) error {
	const op = "scheduler.Scheduler.Stop"

	s.lifeCancel()

	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	}
}

// RunOnce performs a single check pass and reconciliation. Failures are
// logged and never stop the schedule.
func (s *Scheduler) RunOnce(ctx context.Context) {
	const op = "scheduler.Scheduler.RunOnce"

	report, err := s.checker.CheckAll(ctx)
	if err != nil {
		s.logger.Error("check pass failed", slog.Group(op, slog.Any("err", err)))
	} else {
		var reachable int
		for _, o := range report.Outcomes {
			if o.Reachable {
				reachable++
			}
		}

		s.logger.Info("check pass completed", slog.Group(op,
			slog.Int("probed", len(report.Outcomes)),
			slog.Int("reachable", reachable),
			slog.Int("updated", len(report.Routers)),
		))
	}

	repaired, err := s.reconciler.Reconcile(ctx)
	if err != nil {
		s.logger.Error("like count reconciliation failed", slog.Group(op, slog.Any("err", err)))
		return
	}

	if repaired > 0 {
		s.logger.Warn("like counts repaired", slog.Group(op, slog.Int64("routers", repaired)))
	}
}

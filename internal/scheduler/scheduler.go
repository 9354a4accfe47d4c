package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"MarketWrap/internal/ptdate"
	"MarketWrap/internal/wrap"
)

// Scheduler runs the daily wrap on a cron expression evaluated in
// Pacific time, so the schedule tracks the market close across DST.
type Scheduler struct {
	cron   *cron.Cron
	runner *wrap.Runner
	ctx    context.Context
	log    *zap.Logger
}

// New creates a Scheduler bound to the given runner.
func New(ctx context.Context, runner *wrap.Runner, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds(), cron.WithLocation(ptdate.Location())),
		runner: runner,
		ctx:    ctx,
		log:    logger,
	}
}

// Register adds the wrap job. The expression uses the six-field form
// with a leading seconds slot.
func (s *Scheduler) Register(wrapCron string) error {
	if _, err := s.cron.AddFunc(wrapCron, s.wrapTask); err != nil {
		return fmt.Errorf("register wrap task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) wrapTask() {
	res, err := s.runner.RunScheduled(s.ctx)
	if err != nil {
		s.log.Error("scheduled wrap failed", zap.Error(err))
		return
	}
	if res.Skipped {
		s.log.Info("scheduled wrap skipped", zap.String("reason", res.Reason))
		return
	}
	s.log.Info("scheduled wrap completed", zap.String("report_date", res.ReportDate))
}

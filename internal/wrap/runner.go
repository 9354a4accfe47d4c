package wrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"MarketWrap/internal/model"
	"MarketWrap/internal/ptdate"
	"MarketWrap/internal/store"
)

// Report row identity for daily wraps.
const (
	ReportType   = "daily"
	StatusLocked = "locked"
)

// Runner guards the engine with the run window and the once-per-day
// idempotency contract.
type Runner struct {
	engine *Engine
	store  store.Store
	now    func() time.Time
	log    *zap.Logger
}

// NewRunner creates a Runner. A nil clock defaults to time.Now.
func NewRunner(engine *Engine, st store.Store, clock func() time.Time, logger *zap.Logger) *Runner {
	if clock == nil {
		clock = time.Now
	}
	return &Runner{engine: engine, store: st, now: clock, log: logger}
}

// RunScheduled runs the wrap for the target report date if the current
// Pacific time is inside the wrap window; otherwise it reports a skip
// without touching providers or storage.
func (r *Runner) RunScheduled(ctx context.Context) (*model.RunResult, error) {
	now := r.now()
	if !ptdate.InWrapWindow(now) {
		r.log.Info("outside wrap window, skipping")
		return &model.RunResult{Skipped: true, Reason: model.ReasonOutsideWindow}, nil
	}
	return r.RunForDate(ctx, ptdate.TargetReportDate(now))
}

// RunForDate runs the wrap for an explicit report date. An existing
// locked report, or a storage uniqueness conflict from a racing trigger,
// is a benign skip; any other storage failure propagates.
func (r *Runner) RunForDate(ctx context.Context, reportDate string) (*model.RunResult, error) {
	exists, err := r.store.HasLockedReport(ReportType, reportDate)
	if err != nil {
		return nil, fmt.Errorf("check existing report: %w", err)
	}
	if exists {
		r.log.Info("report already locked, skipping", zap.String("report_date", reportDate))
		return &model.RunResult{Skipped: true, Reason: model.ReasonAlreadyExists, ReportDate: reportDate}, nil
	}

	payload := r.engine.RunDailyWrap(ctx, reportDate)

	rec := &model.ReportRecord{
		Type:       ReportType,
		ReportDate: reportDate,
		Status:     StatusLocked,
		AsOf:       r.now().UTC().Format(time.RFC3339),
		Payload:    payload,
	}
	if err := r.store.Insert(rec); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// A concurrent trigger won the insert race.
			r.log.Info("insert conflict, report already written", zap.String("report_date", reportDate))
			return &model.RunResult{Skipped: true, Reason: model.ReasonUniqueConflict, ReportDate: reportDate}, nil
		}
		return nil, fmt.Errorf("insert report: %w", err)
	}

	r.log.Info("report inserted", zap.String("report_date", reportDate), zap.String("id", rec.ID))
	return &model.RunResult{
		Inserted:   true,
		ReportDate: reportDate,
		Summary:    payload.Summary5,
	}, nil
}

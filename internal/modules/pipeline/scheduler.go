package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrNoSchedule is returned when scheduling a pipeline without an interval.
var ErrNoSchedule = errors.New("pipeline has no schedule")

// Scheduler runs a pipeline on its schedule until the context is done.
// Missed intervals are not backfilled and failed runs are not retried.
type Scheduler struct {
	pipeline *Pipeline
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a Scheduler for p.
func NewScheduler(p *Pipeline, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		pipeline: p,
		logger:   logger,
		now:      time.Now,
	}
}

// Run blocks, triggering one pipeline run per schedule boundary.
//
// Returns:
//   - ctx.Err() once the context is done.
func (s *Scheduler) Run(ctx context.Context) error {
	meta := s.pipeline.Metadata()
	if meta.Schedule.Interval() <= 0 {
		return fmt.Errorf("%w: %s", ErrNoSchedule, meta.ID)
	}

	for {
		next := meta.Schedule.NextRun(meta.StartDate, s.now())
		s.logger.Info("next run scheduled",
			zap.String("dag_id", meta.ID),
			zap.Time("at", next))

		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("scheduler stopped", zap.Error(ctx.Err()))
			return ctx.Err()
		case <-timer.C:
		}

		if err := s.pipeline.Run(ctx); err != nil {
			s.logger.Error("scheduled run failed", zap.Error(err))
		}
	}
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnknownStep is returned by RunStep for a name no step carries.
var ErrUnknownStep = errors.New("unknown step")

// Step defines the interface for a pipeline step.
// Steps share no in-memory data; each one works off the previous step's
// side effects on disk.
type Step interface {
	Name() string
	Description() string
	Execute(ctx context.Context, logger *zap.Logger) error
}

// Metadata describes the workflow to an external scheduler.
type Metadata struct {
	ID          string
	Description string
	Schedule    Schedule
	StartDate   time.Time
}

// Pipeline manages a sequence of steps that run strictly one after another.
type Pipeline struct {
	meta   Metadata
	stages []Step      // Steps in execution order
	logger *zap.Logger // Logger for pipeline-wide logging
}

// New creates a new Pipeline instance with the given metadata and logger.
//
// Parameters:
//   - meta: Workflow identity and schedule.
//   - logger: Logger for logging pipeline events.
//
// Returns:
//   - A pointer to a new Pipeline instance.
func New(meta Metadata, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		meta:   meta,
		logger: logger,
	}
}

// AddStage appends a step to the pipeline's sequence. Each step depends on
// the one added before it.
//
// Parameters:
//   - step: The step to add.
func (p *Pipeline) AddStage(step Step) {
	p.stages = append(p.stages, step)
}

// Metadata returns the workflow metadata.
func (p *Pipeline) Metadata() Metadata {
	return p.meta
}

// Run executes every step in declared order under a fresh run ID.
//
// The chain stops at the first step that returns an error, or when ctx is
// done between two steps.
//
// Returns:
//   - The failing step's error wrapped with its name, ctx.Err() on
//     cancellation, nil otherwise.
func (p *Pipeline) Run(ctx context.Context) error {
	if len(p.stages) == 0 {
		p.logger.Warn("no steps in pipeline")
		return nil
	}

	logger := p.runLogger()
	logger.Info("pipeline started", zap.Int("steps", len(p.stages)))
	start := time.Now()

	for _, step := range p.stages {
		if err := ctx.Err(); err != nil {
			logger.Info("pipeline canceled", zap.Error(err))
			return err
		}
		if err := p.execute(ctx, step, logger); err != nil {
			return err
		}
	}

	logger.Info("pipeline completed successfully", zap.Duration("elapsed", time.Since(start)))
	return nil
}

// RunStep executes the single step called name, ignoring the others.
func (p *Pipeline) RunStep(ctx context.Context, name string) error {
	for _, step := range p.stages {
		if step.Name() == name {
			return p.execute(ctx, step, p.runLogger())
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownStep, name)
}

func (p *Pipeline) runLogger() *zap.Logger {
	return p.logger.With(
		zap.String("dag_id", p.meta.ID),
		zap.String("run_id", uuid.NewString()),
	)
}

func (p *Pipeline) execute(ctx context.Context, step Step, logger *zap.Logger) error {
	stepLogger := logger.With(zap.String("step", step.Name()))
	stepLogger.Debug("step started")
	start := time.Now()

	if err := step.Execute(ctx, stepLogger); err != nil {
		stepLogger.Error("step execution failed", zap.Error(err))
		return fmt.Errorf("step %s: %w", step.Name(), err)
	}

	stepLogger.Info("step completed", zap.Duration("elapsed", time.Since(start)))
	return nil
}

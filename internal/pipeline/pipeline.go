package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/proxycollector/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the collection
// filled in by the previous steps.
type Step interface {
	// Do executes the step. A non-nil error stops the pipeline.
	Do(ctx context.Context, c *model.Collection) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in order and stops at the first error, which is
// also stored in c.Error. c.Duration is set however the run ends.
//
// Cancellation is checked between steps only; a step that blocks is expected
// to honor ctx itself.
func (p *Pipeline) Execute(ctx context.Context, c *model.Collection) error {
	defer func() {
		c.Duration = time.Since(c.StartedAt)
	}()

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", err,
			)
			c.Error = err
			return err
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"channel", c.RawChannel,
		)

		if err := step.Do(ctx, c); err != nil {
			p.logger.Info("step failed",
				"step", step.Name(),
				"channel", c.RawChannel,
				"error", err,
			)
			c.Error = err
			return err
		}

		c.PerformedSteps = append(c.PerformedSteps, step.Name())
	}
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

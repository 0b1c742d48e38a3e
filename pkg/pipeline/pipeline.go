package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/plugrig/plugrig/pkg/plugin"
)

// Pipeline is an ordered sequence of (step name, resolved callable) pairs,
// pre-bound at build time from a single registry snapshot. Immutable after
// construction; safe for concurrent reuse.
type Pipeline struct {
	names []string
	funcs []plugin.Func
}

// Steps returns the step names in application order.
func (p *Pipeline) Steps() []string {
	names := make([]string, len(p.names))
	copy(names, p.names)

	return names
}

// Len returns the number of steps.
func (p *Pipeline) Len() int { return len(p.funcs) }

// Run applies each step in order, feeding every step's output into the next
// step, and returns the final output. The first step error stops the run
// immediately and is returned as a *StepError naming the step and its 0-based
// position, with the original error as its cause. Run holds no per-call
// state, so the same Pipeline may run concurrently with different inputs.
func (p *Pipeline) Run(ctx context.Context, input any, opts ...RunOption) (any, error) {
	var run runOptions
	for _, opt := range opts {
		opt(&run)
	}
	if run.observer != nil && run.runID == "" {
		run.runID = uuid.NewString()
	}
	if run.observer != nil {
		run.observer.BeforeRun(ctx, run.runID, p.names, input)
	}

	out := input
	for i, fn := range p.funcs {
		if run.observer != nil {
			run.observer.BeforeStep(ctx, run.runID, i, p.names[i], out)
		}

		start := time.Now()
		next, err := fn(ctx, out)
		elapsed := time.Since(start)

		if run.measure != nil {
			run.measure.Add(p.names[i], elapsed)
		}
		if run.observer != nil {
			run.observer.AfterStep(ctx, run.runID, i, p.names[i], next, err, elapsed)
		}
		if err != nil {
			stepErr := &StepError{Step: p.names[i], Index: i, Err: err}
			if run.observer != nil {
				run.observer.AfterRun(ctx, run.runID, nil, stepErr)
			}

			return nil, stepErr
		}
		out = next
	}

	if run.observer != nil {
		run.observer.AfterRun(ctx, run.runID, out, nil)
	}

	return out, nil
}

package pipeline

import (
	"context"
	"time"
)

// Observer receives hooks around a pipeline run and its steps. Observers must
// not mutate the values they receive; a pipeline run stays side-effect free
// apart from the plugin callables themselves.
type Observer interface {
	// BeforeRun is called once before the first step, with the run's ID,
	// the step names and the initial input.
	BeforeRun(ctx context.Context, runID string, steps []string, input any)

	// BeforeStep is called before each step with its 0-based index.
	BeforeStep(ctx context.Context, runID string, index int, step string, input any)

	// AfterStep is called after each step with its output or error and the
	// time the callable took.
	AfterStep(ctx context.Context, runID string, index int, step string, output any, err error, elapsed time.Duration)

	// AfterRun is called once when the run finishes, with the final output
	// or the *StepError that stopped it.
	AfterRun(ctx context.Context, runID string, output any, err error)
}

type runOptions struct {
	observer Observer
	measure  *Measure
	runID    string
}

// RunOption configures a single pipeline run.
type RunOption func(*runOptions)

// WithObserver attaches an Observer to the run. A run ID is generated unless
// WithRunID supplies one.
func WithObserver(obs Observer) RunOption {
	return func(o *runOptions) {
		o.observer = obs
	}
}

// WithRunID fixes the run ID passed to the observer, e.g. to correlate with
// an external job ID.
func WithRunID(runID string) RunOption {
	return func(o *runOptions) {
		o.runID = runID
	}
}

// WithMeasure records per-step durations into m.
func WithMeasure(m *Measure) RunOption {
	return func(o *runOptions) {
		o.measure = m
	}
}

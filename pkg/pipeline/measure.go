package pipeline

import (
	"sync"
	"time"
)

// Metric aggregates the durations of one step across runs.
type Metric struct {
	Count int64
	Total time.Duration
}

// Avg returns the average duration per invocation, rounded to a readable
// precision.
func (m Metric) Avg() time.Duration {
	if m.Count == 0 {
		return 0
	}

	return round(time.Duration(float64(m.Total) / float64(m.Count)))
}

// Measure collects per-step timing metrics across any number of runs. Safe
// for concurrent use; attach it to runs with WithMeasure.
type Measure struct {
	mu    sync.Mutex
	steps map[string]*Metric
}

// NewMeasure returns an empty Measure.
func NewMeasure() *Measure {
	return &Measure{steps: make(map[string]*Metric)}
}

// Add records one invocation of step taking elapsed.
func (m *Measure) Add(step string, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mt := m.steps[step]
	if mt == nil {
		mt = &Metric{}
		m.steps[step] = mt
	}
	mt.Count++
	mt.Total += elapsed
}

// Step returns the metric recorded for a step.
func (m *Measure) Step(name string) (Metric, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mt, ok := m.steps[name]
	if !ok {
		return Metric{}, false
	}

	return *mt, true
}

// Steps returns a snapshot of all recorded metrics.
func (m *Measure) Steps() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]Metric, len(m.steps))
	for name, mt := range m.steps {
		out[name] = *mt
	}

	return out
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Second:
		d = d.Round(time.Second)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond)
	}

	return d
}

package plugin

import (
	"context"
	"sort"
)

// Func is the uniform plugin shape: a single-argument, single-result
// transformation. The context is passed through from the pipeline run.
type Func func(ctx context.Context, v any) (any, error)

// Registry maps plugin names to callables, sourced from one module. A
// Registry is validated on construction and never mutated afterwards, so it
// is safe to share between any number of concurrent readers.
type Registry struct {
	funcs map[string]Func
}

// Get returns the callable registered under name.
func (r *Registry) Get(name string) (Func, bool) {
	fn, ok := r.funcs[name]

	return fn, ok
}

// Names returns all registered plugin names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int { return len(r.funcs) }

package pipeline

import (
	"sort"

	"github.com/plugrig/plugrig/pkg/plugin"
)

// AvailablePreview bounds how many registry names an unknown-steps Error
// carries alongside the missing names.
const AvailablePreview = 20

// Build compiles an executable Pipeline from a registry and an ordered step
// list. Every step name must be non-empty (an *Error cites the offending
// index and value otherwise), and every name must exist in the registry:
// unknown names are collected and reported together in a single *Error, with
// up to AvailablePreview registry names as a hint. On success each name is
// resolved to its callable exactly once. Build performs no I/O and does not
// mutate the registry.
func Build(reg *plugin.Registry, steps []string) (*Pipeline, error) {
	if reg == nil {
		return nil, &Error{Index: -1, Reason: "registry must be set"}
	}

	for i, name := range steps {
		if name == "" {
			return nil, &Error{Index: i, Step: name, Reason: "step name must be a non-empty string"}
		}
	}

	var missing []string
	seen := make(map[string]struct{}, len(steps))
	for _, name := range steps {
		if _, ok := reg.Get(name); ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		missing = append(missing, name)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		available := reg.Names()
		if len(available) > AvailablePreview {
			available = available[:AvailablePreview]
		}

		return nil, &Error{
			Index:     -1,
			Missing:   missing,
			Available: available,
			Reason:    "unknown steps",
		}
	}

	names := make([]string, len(steps))
	copy(names, steps)
	funcs := make([]plugin.Func, len(steps))
	for i, name := range steps {
		fn, _ := reg.Get(name)
		funcs[i] = fn
	}

	return &Pipeline{names: names, funcs: funcs}, nil
}

// Package engine composes configuration validation, module resolution,
// registry loading and pipeline building behind one entry point, with the
// caching that makes repeated resolution cheap.
//
// An Engine owns two caches. The registry cache is bounded and
// recency-evicted, keyed by module name; loading failures are never cached.
// The pipeline cache is unbounded within the process, keyed by the resolved
// module name and the exact ordered step list. Both are populated through
// singleflight so concurrent misses for the same key converge on a single
// stored value.
//
// A pipeline-cache hit returns the cached pipeline unchanged, including its
// bound callables: reloading or invalidating a module's registry does not
// retroactively rebind pipelines that were already built against the earlier
// snapshot. This stable-snapshot policy is deliberate; callers that need
// fresh bindings after swapping a module must resolve a new pipeline under a
// different step list or restart the process.
package engine

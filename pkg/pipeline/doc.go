// Package pipeline builds and runs ordered chains of named plugins.
//
// A pipeline is compiled once from a plugin registry and a step list: every
// step name is resolved to its callable up front, so a built pipeline is a
// pure function of its input plus the pre-bound callables. Running it feeds
// each step's output into the next step and returns the final output.
//
// Build reports all unknown step names together, with a preview of the
// available registry names, so several typos can be fixed in one round trip.
// A step failure at run time stops the pipeline immediately and is reported
// as a *StepError carrying the step's name, its 0-based position and the
// original cause.
//
// A built pipeline holds no mutable per-call state: the same Pipeline can be
// run repeatedly and concurrently with different inputs. Optional run
// observers and per-step timing measures hook into a run without changing
// this property.
package pipeline

package pipeline

import (
	"fmt"
	"strconv"
	"strings"
)

// Error reports an invalid pipeline definition: a bad step name or step names
// missing from the registry. All missing names are collected into one Error
// rather than reported one at a time.
type Error struct {
	// Index and Step identify a single offending step for element-level
	// violations. Index is -1 when not applicable.
	Index int
	Step  string

	// Missing lists every step name absent from the registry, sorted.
	// Available holds a bounded preview of the registry's names.
	Missing   []string
	Available []string

	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := "pipeline: " + e.Reason
	if e.Index >= 0 {
		msg = fmt.Sprintf("pipeline: step %d (%s): %s", e.Index, strconv.Quote(e.Step), e.Reason)
	}
	if len(e.Missing) > 0 {
		msg += ": " + strings.Join(e.Missing, ", ")
		msg += " (available: " + strings.Join(e.Available, ", ") + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// StepError reports a step failing while a pipeline runs. Index is the
// 0-based position of the step in the pipeline.
type StepError struct {
	Step  string
	Index int
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("pipeline: step %d (%q) failed: %v", e.Index, e.Step, e.Err)
}

// Unwrap returns the step's original error.
func (e *StepError) Unwrap() error { return e.Err }

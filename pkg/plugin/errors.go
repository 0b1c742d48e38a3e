package plugin

import "strconv"

// Error reports a module that cannot be loaded, a missing or broken registry
// shape, or a registry entry failing validation. Module names the requested
// module when one was involved; Key is set when a specific registry entry is
// at fault.
type Error struct {
	Module string
	Key    string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := "plugin: "
	if e.Module != "" {
		msg += "module " + strconv.Quote(e.Module) + ": "
	}
	if e.Key != "" {
		msg += "key " + strconv.Quote(e.Key) + ": "
	}
	msg += e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Err }

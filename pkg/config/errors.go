package config

// Error reports a missing, malformed or invalid configuration document.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := "config: " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Err }

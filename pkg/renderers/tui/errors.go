package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrFormRequired is returned when a session is built without a form.
	ErrFormRequired = errors.New("tui: form is required")
	// ErrAttemptsExceeded is returned when the form stays invalid after the
	// configured number of correction rounds.
	ErrAttemptsExceeded = errors.New("tui: attempts exceeded")
)

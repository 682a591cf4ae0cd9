package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrInvalid is returned when the form is still invalid after the last
	// prompting round.
	ErrInvalid = errors.New("tui: form is still invalid")
	// ErrNilForm is returned when Run is called without a form.
	ErrNilForm = errors.New("tui: form is nil")
)

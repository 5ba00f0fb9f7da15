package app

import "errors"

// Application errors.
var (
	// ErrCancelled signals that the user left the field without accepting.
	ErrCancelled = errors.New("input cancelled")

	// ErrClosed indicates the application was shut down.
	ErrClosed = errors.New("application closed")

	// ErrNoMacroFile indicates a reload without a configured macro file.
	ErrNoMacroFile = errors.New("no macro file configured")
)

// InitError reports the component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

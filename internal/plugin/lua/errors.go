package lua

import "errors"

var (
	// ErrClosed is returned when using a closed engine.
	ErrClosed = errors.New("lua: engine closed")

	// ErrBadResult is returned when a macro function returns something other
	// than a table or nil.
	ErrBadResult = errors.New("lua: macro must return a table or nil")
)

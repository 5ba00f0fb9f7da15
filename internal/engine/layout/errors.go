package layout

import (
	"errors"
	"fmt"
)

// Errors returned by pattern parsing and composition.
var (
	ErrEmptyPattern   = errors.New("empty date pattern")
	ErrMissingField   = errors.New("pattern is missing a date field")
	ErrDuplicateField = errors.New("pattern repeats a date field")
	ErrUnknownSymbol  = errors.New("unknown pattern symbol")
	ErrUnterminated   = errors.New("unterminated quote in pattern")
)

// PatternError describes a pattern that could not be used.
type PatternError struct {
	Pattern string
	Pos     int
	Err     error
}

func (e *PatternError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("pattern %q at %d: %v", e.Pattern, e.Pos, e.Err)
	}
	return fmt.Sprintf("pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

package special

import "errors"

// ErrNilSource is returned when a macro table is loaded from a nil reader.
var ErrNilSource = errors.New("special: nil macro source")

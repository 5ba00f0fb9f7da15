package document

import "errors"

// ErrBadLocation is returned for a remove or replace range outside the text.
var ErrBadLocation = errors.New("document: bad location")

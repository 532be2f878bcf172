package pointer

import "errors"

// ErrMalformed reports a byte sequence that is not a valid pointer report.
var ErrMalformed = errors.New("malformed pointer report")

package prompt

import "errors"

// ErrUnknown indicates an invalid meta-prompt kind was specified.
var ErrUnknown = errors.New("unknown prompt kind")

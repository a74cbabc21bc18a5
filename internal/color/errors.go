package color

import (
	"errors"
	"fmt"
)

// ErrFormat indicates a string is not a 6-digit hex color.
var ErrFormat = errors.New("invalid hex color")

// FormatError reports the offending input. It matches ErrFormat with errors.Is.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid hex color %q: want 6 hex digits with optional '#'", e.Input)
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

package brand

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField indicates a required questionnaire field is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidDocument indicates an input file is not valid JSON/YAML.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidPalette indicates a palette has no primary color or a bad hex.
	ErrInvalidPalette = errors.New("invalid palette")
)

// MissingFieldError names the absent field. It matches ErrMissingField.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("questionnaire: missing required field %q", e.Field)
}

// Is reports whether target is ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

package llm

import "errors"

var (
	// ErrEmptyAPIKey indicates that the API key was not provided.
	ErrEmptyAPIKey = errors.New("API key is required")

	// ErrInvalidAnswer indicates the model answered with something other
	// than a JSON document.
	ErrInvalidAnswer = errors.New("model answer is not valid JSON")
)

package imagegen

import "errors"

var (
	// ErrEmptyAPIKey indicates that the provider key was not provided.
	ErrEmptyAPIKey = errors.New("API key is required")

	// ErrNoImage indicates a successful response that carried no image.
	ErrNoImage = errors.New("response contains no image")

	// ErrTooLarge indicates a response body over the size limit.
	ErrTooLarge = errors.New("response too large")

	// ErrIncomplete indicates that at least one prompt has no image after a run.
	ErrIncomplete = errors.New("image generation incomplete")
)

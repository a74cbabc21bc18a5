package skill

import "errors"

var (
	// ErrEmptyAPIKey indicates that ANTHROPIC_API_KEY was not provided.
	ErrEmptyAPIKey = errors.New("API key is required")

	// ErrNoFiles indicates that the skill directory holds nothing to upload.
	ErrNoFiles = errors.New("no skill files to upload")

	// ErrInvalidManifest indicates a skill.yaml that cannot be decoded.
	ErrInvalidManifest = errors.New("invalid skill manifest")
)

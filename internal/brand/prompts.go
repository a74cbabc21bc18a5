package brand

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImagePrompt is one moodboard image request as returned by the LLM.
// ImagePath is filled in by image generation; Path is a caller-supplied
// local image.
type ImagePrompt struct {
	Label     string `json:"label"`
	Prompt    string `json:"prompt"`
	ImagePath string `json:"image_path,omitempty"`
	Path      string `json:"path,omitempty"`
	FileID    string `json:"file_id,omitempty"`
}

// LocalImage returns the caller-supplied image path, preferring ImagePath.
func (p ImagePrompt) LocalImage() string {
	if p.ImagePath != "" {
		return p.ImagePath
	}
	return p.Path
}

// ImagePrompts is the moodboard prompts document. Top-level keys other than
// "prompts" are kept as read and written back on save.
type ImagePrompts struct {
	Prompts []ImagePrompt `json:"prompts"`

	extra map[string]json.RawMessage
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *ImagePrompts) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var prompts []ImagePrompt
	if v, ok := raw["prompts"]; ok {
		if err := json.Unmarshal(v, &prompts); err != nil {
			return err
		}
		delete(raw, "prompts")
	}
	p.Prompts = prompts
	p.extra = nil
	if len(raw) > 0 {
		p.extra = raw
	}
	return nil
}

// MarshalJSON implements json.Marshaler. Keys are written in sorted order.
func (p ImagePrompts) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.extra)+1)
	for k, v := range p.extra {
		out[k] = v
	}
	out["prompts"] = p.Prompts
	return json.Marshal(out)
}

// LoadImagePrompts reads a moodboard prompts JSON file.
func LoadImagePrompts(path string) (ImagePrompts, error) {
	var p ImagePrompts

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided input file
	if err != nil {
		return p, fmt.Errorf("failed to read prompts: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("%s: %v: %w", path, err, ErrInvalidDocument)
	}
	return p, nil
}

// SaveImagePrompts writes p back to path with two-space indentation.
func SaveImagePrompts(path string, p ImagePrompts) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode prompts: %w", err)
	}
	// #nosec G306 -- user-owned working file
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write prompts: %w", err)
	}
	return nil
}

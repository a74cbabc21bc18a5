package brand

import (
	"encoding/json"
	"fmt"
	"os"
)

// Pillar is a visual brand pillar. Only Name is shown on the deck; the rest
// feeds image generation outside this program.
type Pillar struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Characteristics []string `json:"characteristics,omitempty"`
}

// UnmarshalJSON accepts either an object or a bare string name.
func (p *Pillar) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*p = Pillar{Name: name}
		return nil
	}
	type plain Pillar
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Pillar(v)
	return nil
}

// LoadPillars reads a JSON list of pillars, or an object with a
// "visual_pillars" list.
func LoadPillars(path string) ([]Pillar, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided input file
	if err != nil {
		return nil, fmt.Errorf("failed to read pillars: %w", err)
	}

	var list []Pillar
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var doc struct {
		VisualPillars []Pillar `json:"visual_pillars"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, err, ErrInvalidDocument)
	}
	return doc.VisualPillars, nil
}

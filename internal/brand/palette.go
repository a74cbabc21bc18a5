package brand

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jtohta/creative-direction-decks-skill/internal/color"
)

// NamedColor is one palette entry.
type NamedColor struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Palette is the LLM-produced color palette. Palette order is display order.
type Palette struct {
	Primary     NamedColor   `json:"primary"`
	Palette     []NamedColor `json:"palette"`
	Description string       `json:"description,omitempty"`
}

// LoadPalette reads a palette JSON file and validates every hex code.
func LoadPalette(path string) (Palette, error) {
	var p Palette

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided input file
	if err != nil {
		return p, fmt.Errorf("failed to read palette: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("%s: %v: %w", path, err, ErrInvalidDocument)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Validate checks that a primary color is present and all hex codes parse.
func (p Palette) Validate() error {
	if p.Primary.Hex == "" {
		return fmt.Errorf("primary color has no hex: %w", ErrInvalidPalette)
	}
	if _, err := color.ParseHex(p.Primary.Hex); err != nil {
		return fmt.Errorf("primary %q: %w", p.Primary.Name, err)
	}
	for i, c := range p.Palette {
		if _, err := color.ParseHex(c.Hex); err != nil {
			return fmt.Errorf("palette[%d] %q: %w", i, c.Name, err)
		}
	}
	return nil
}

// Hexes returns the primary hex followed by the palette hexes in order.
func (p Palette) Hexes() []string {
	out := make([]string, 0, len(p.Palette)+1)
	out = append(out, p.Primary.Hex)
	for _, c := range p.Palette {
		out = append(out, c.Hex)
	}
	return out
}

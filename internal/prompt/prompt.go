// Package prompt builds the meta-prompts handed to an external LLM. The LLM
// answers with JSON (image prompts or a color palette); nothing here parses
// that answer.
package prompt

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jtohta/creative-direction-decks-skill/internal/brand"
	"github.com/jtohta/creative-direction-decks-skill/internal/lang"
)

// Kind names as accepted on the command line.
const (
	Moodboard = "moodboard"
	Palette   = "palette"
)

// ---------------------------------------------------------------------------
// Kind type - a validated meta-prompt kind
// ---------------------------------------------------------------------------

// Kind selects which meta-prompt to build.
// The zero value is invalid; calling Build on it panics.
type Kind struct {
	name string
}

// Pre-parsed kinds.
var (
	MoodboardKind = Kind{name: Moodboard}
	PaletteKind   = Kind{name: Palette}
)

// kinds holds per-kind file naming and the fields each builder reads.
var kinds = map[string]struct {
	outputSuffix string
	answerSuffix string
	required     []string
}{
	Moodboard: {"_meta_prompt.txt", "_prompts.json", dataFields},
	Palette:   {"_color_palette_meta_prompt.txt", "_colors.json", dataFields},
}

var dataFields = []string{
	brand.FieldDJName,
	brand.FieldMusicStyle,
	brand.FieldCoreDescriptors,
	brand.FieldEmotionalTarget,
	brand.FieldPhysicalPlace,
	brand.FieldPrimaryColors,
	brand.FieldAccentColors,
	brand.FieldColorMood,
	brand.FieldVisualReferences,
	brand.FieldFormsAndTextures,
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return Kind{}, fmt.Errorf("prompt kind cannot be empty: %w", ErrUnknown)
	}
	if _, ok := kinds[s]; !ok {
		return Kind{}, fmt.Errorf("unknown prompt kind %q (want %s or %s): %w", s, Moodboard, Palette, ErrUnknown)
	}
	return Kind{name: s}, nil
}

// String returns the kind name.
func (k Kind) String() string {
	return k.name
}

// IsZero reports whether k is the zero value.
func (k Kind) IsZero() bool {
	return k.name == ""
}

// Build renders the meta-prompt for q. A non-English language adds a
// "Respond in ..." line ahead of the template. Absent required fields are
// reported as *brand.MissingFieldError.
func (k Kind) Build(q brand.Questionnaire, l lang.Language) (string, error) {
	spec, ok := kinds[k.name]
	if !ok {
		panic("prompt.Kind.Build called on zero value")
	}
	if err := q.Require(spec.required...); err != nil {
		return "", err
	}

	var text string
	switch k.name {
	case Moodboard:
		text = fmt.Sprintf(moodboardTemplate, dataBlock(q, true))
	case Palette:
		text = fmt.Sprintf(paletteTemplate, dataBlock(q, false))
	}
	return l.Apply(text), nil
}

// OutputName is the meta-prompt filename for an input file:
// the input's base name without extension plus a per-kind suffix.
func (k Kind) OutputName(inputPath string) string {
	return stem(inputPath) + kinds[k.name].outputSuffix
}

// AnswerName is the filename for the LLM's JSON answer.
func (k Kind) AnswerName(inputPath string) string {
	return stem(inputPath) + kinds[k.name].answerSuffix
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// dataBlock serializes the questionnaire as the indented text the
// templates embed. Optional fields render as "N/A" when extended is set.
func dataBlock(q brand.Questionnaire, extended bool) string {
	var b strings.Builder
	join := func(s []string) string { return strings.Join(s, ", ") }

	b.WriteString("\n")
	fmt.Fprintf(&b, "DJ Name: %s\n", q.DJName)
	fmt.Fprintf(&b, "Music Style: %s\n", q.MusicStyle)
	fmt.Fprintf(&b, "Core Descriptors: %s\n", join(q.CoreDescriptors))
	fmt.Fprintf(&b, "Emotional Target: %s\n", q.EmotionalTarget)
	fmt.Fprintf(&b, "Physical Place: %s\n", q.PhysicalPlace)
	b.WriteString("Color Preferences:\n")
	fmt.Fprintf(&b, "  - Primary: %s\n", join(q.ColorPreferences.Primary))
	fmt.Fprintf(&b, "  - Accents: %s\n", join(q.ColorPreferences.Accents))
	fmt.Fprintf(&b, "  - Mood: %s\n", q.ColorPreferences.Mood)
	fmt.Fprintf(&b, "Visual References: %s\n", join(q.VisualReferences))
	fmt.Fprintf(&b, "Forms & Textures: %s\n", join(q.FormsAndTextures))
	if extended {
		fmt.Fprintf(&b, "Brand Positioning: %s\n", orNA(q.BrandPositioning))
		fmt.Fprintf(&b, "Existing Visuals: %s\n", orNA(q.ExistingVisuals))
	}
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// The templates below contain a single %s for the data block; literal
// percent signs must be doubled.

const moodboardTemplate = `You are creating a brand moodboard for a DJ. Based on the information below, generate 4 distinct AI image generation prompts that together tell a cohesive visual story for this artist's brand identity.

%s

The 4 prompts should:
- Work together to communicate this DJ's unique aesthetic world
- Each capture a different visual angle or aspect of their brand
- Use the colors, textures, descriptors, and references provided
- Be specific enough for an AI image generator to create compelling visuals
- Together create visual cohesion (they should feel like they belong in the same universe)

For each prompt, provide:
1. A short label (2-4 words, ALL CAPS) that describes what this image represents
2. The full image generation prompt (detailed, specific, incorporating the aesthetic elements)

Return your response in this exact JSON format:
{
  "prompts": [
    {"label": "LABEL HERE", "prompt": "detailed prompt here"},
    {"label": "LABEL HERE", "prompt": "detailed prompt here"},
    {"label": "LABEL HERE", "prompt": "detailed prompt here"},
    {"label": "LABEL HERE", "prompt": "detailed prompt here"}
  ]
}`

const paletteTemplate = `Based on this DJ's brand identity, create a cohesive color palette with exact hex codes:

%s

Generate a color palette that captures this aesthetic. Choose ONE primary brand color (the most important defining color) and 5-7 supporting colors that work together harmoniously. Always include pure black (#000000) and pure white (#FFFFFF) in the palette.

The colors should reflect the mood, emotional target, and visual references provided. Consider the music style and descriptors when choosing the palette.

Also, generate a 2-paragraph descriptive text about the color palette (MAXIMUM 620 characters total including line breaks). The text should:
- Paragraph 1: Explain how the colors establish the brand's atmosphere and emotional resonance
- Paragraph 2: Highlight how accent colors create dynamic tension or punctuation
- Use specific color names from the palette
- Reference the DJ's descriptors, positioning, and music style
- Match the tone of this example: "This brand is grounded, intentional, and quietly powerful. Its core palette draws from earth tones..."

Return your response in this exact JSON format:
{
  "primary": {"name": "Descriptive Color Name", "hex": "#HEXCODE"},
  "palette": [
    {"name": "Descriptive Color Name", "hex": "#HEXCODE"},
    {"name": "Descriptive Color Name", "hex": "#HEXCODE"},
    {"name": "Descriptive Color Name", "hex": "#HEXCODE"},
    {"name": "Black", "hex": "#000000"},
    {"name": "White", "hex": "#FFFFFF"}
  ],
  "description": "Paragraph 1 text here.\n\nParagraph 2 text here."
}

CRITICAL: The "description" field must be exactly 620 characters or less (including the \n\n between paragraphs).
Make sure all hex codes are valid 6-character hex colors (e.g., #1A2B3C).
`

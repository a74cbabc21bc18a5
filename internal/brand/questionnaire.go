// Package brand holds the records a brand guide is built from: the DJ
// questionnaire, the LLM-produced palette and image prompts, and the visual
// pillars. Records are loaded once per run and never mutated afterwards.
package brand

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field names as they appear in questionnaire files.
const (
	FieldDJName           = "dj_name"
	FieldMusicStyle       = "music_style"
	FieldCoreDescriptors  = "core_descriptors"
	FieldEmotionalTarget  = "emotional_target"
	FieldPhysicalPlace    = "physical_place"
	FieldPrimaryColors    = "color_preferences.primary"
	FieldAccentColors     = "color_preferences.accents"
	FieldColorMood        = "color_preferences.mood"
	FieldVisualReferences = "visual_references"
	FieldFormsAndTextures = "forms_and_textures"
)

// ColorPreferences is the color sub-record of the questionnaire.
type ColorPreferences struct {
	Primary []string `json:"primary" yaml:"primary"`
	Accents []string `json:"accents" yaml:"accents"`
	Mood    string   `json:"mood" yaml:"mood"`
}

// Questionnaire is the DJ's answers to the brand questionnaire.
type Questionnaire struct {
	DJName           string           `json:"dj_name" yaml:"dj_name"`
	MusicStyle       string           `json:"music_style" yaml:"music_style"`
	CoreDescriptors  []string         `json:"core_descriptors" yaml:"core_descriptors"`
	EmotionalTarget  string           `json:"emotional_target" yaml:"emotional_target"`
	PhysicalPlace    string           `json:"physical_place" yaml:"physical_place"`
	ColorPreferences ColorPreferences `json:"color_preferences" yaml:"color_preferences"`
	VisualReferences []string         `json:"visual_references" yaml:"visual_references"`
	FormsAndTextures []string         `json:"forms_and_textures" yaml:"forms_and_textures"`

	// Optional.
	BrandPositioning string `json:"brand_positioning,omitempty" yaml:"brand_positioning,omitempty"`
	ExistingVisuals  string `json:"existing_visuals,omitempty" yaml:"existing_visuals,omitempty"`
	// BrandNarrative, when set, is shown on the moodboard slide instead of
	// the assembled narrative.
	BrandNarrative string `json:"brand_narrative,omitempty" yaml:"brand_narrative,omitempty"`

	// keys holds the field names present in the loaded document. Nil for
	// questionnaires built in code.
	keys map[string]bool
}

// LoadQuestionnaire reads a questionnaire from a JSON file, or YAML when the
// extension is .yaml or .yml. Unknown fields are ignored and no field is
// checked here; callers use Require for the fields they read.
func LoadQuestionnaire(path string) (Questionnaire, error) {
	var q Questionnaire

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided input file
	if err != nil {
		return q, fmt.Errorf("failed to read questionnaire: %w", err)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &q); err != nil {
			return q, fmt.Errorf("%s: %v: %w", path, err, ErrInvalidDocument)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return q, fmt.Errorf("%s: %v: %w", path, err, ErrInvalidDocument)
		}
	default:
		if err := json.Unmarshal(data, &q); err != nil {
			return q, fmt.Errorf("%s: %v: %w", path, err, ErrInvalidDocument)
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return q, fmt.Errorf("%s: %v: %w", path, err, ErrInvalidDocument)
		}
	}
	q.keys = presentKeys(raw)
	return q, nil
}

// presentKeys records the top-level keys of a decoded document and the keys
// of its color_preferences object, the latter as "color_preferences.<key>".
func presentKeys(raw map[string]any) map[string]bool {
	keys := make(map[string]bool, len(raw))
	for k, v := range raw {
		keys[k] = true
		if k != "color_preferences" {
			continue
		}
		if sub, ok := v.(map[string]any); ok {
			for sk := range sub {
				keys[k+"."+sk] = true
			}
		}
	}
	return keys
}

// Require checks that each named field is present. For a loaded
// questionnaire a field is present when its key appears in the document,
// even with an empty value. For one built in code, a string field is absent
// when empty and a list field when nil.
func (q Questionnaire) Require(fields ...string) error {
	for _, f := range fields {
		present, known := q.has(f)
		if !known {
			panic(fmt.Sprintf("brand: unknown questionnaire field %q", f))
		}
		if !present {
			return &MissingFieldError{Field: f}
		}
	}
	return nil
}

func (q Questionnaire) has(field string) (present, known bool) {
	set, known := q.hasValue(field)
	if !known {
		return false, false
	}
	return set || q.keys[field], true
}

func (q Questionnaire) hasValue(field string) (set, known bool) {
	switch field {
	case FieldDJName:
		return q.DJName != "", true
	case FieldMusicStyle:
		return q.MusicStyle != "", true
	case FieldCoreDescriptors:
		return q.CoreDescriptors != nil, true
	case FieldEmotionalTarget:
		return q.EmotionalTarget != "", true
	case FieldPhysicalPlace:
		return q.PhysicalPlace != "", true
	case FieldPrimaryColors:
		return q.ColorPreferences.Primary != nil, true
	case FieldAccentColors:
		return q.ColorPreferences.Accents != nil, true
	case FieldColorMood:
		return q.ColorPreferences.Mood != "", true
	case FieldVisualReferences:
		return q.VisualReferences != nil, true
	case FieldFormsAndTextures:
		return q.FormsAndTextures != nil, true
	}
	return false, false
}

// Slug lowercases s and replaces each whitespace run with '_'.
// Used for output filenames derived from the DJ name.
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

package narrative_test

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jtohta/creative-direction-decks-skill/internal/brand"
	"github.com/jtohta/creative-direction-decks-skill/internal/narrative"
)

func aquaVoyager() brand.Questionnaire {
	return brand.Questionnaire{
		DJName:          "Aqua Voyager",
		MusicStyle:      "Deep house, progressive, techno",
		CoreDescriptors: []string{"oceanic", "mysterious", "hypnotic"},
		EmotionalTarget: "Like exploring an alien underwater world",
		PhysicalPlace:   "Deep ocean, but not Earth's ocean",
		ColorPreferences: brand.ColorPreferences{
			Primary: []string{"deep blue", "teal"},
			Accents: []string{"cyan", "purple"},
			Mood:    "dark with glowing highlights",
		},
		VisualReferences: []string{"bioluminescence"},
		FormsAndTextures: []string{"organic flowing forms", "liquid", "ethereal"},
		BrandPositioning: "otherworldly explorer of sonic depths",
	}
}

// ---------------------------------------------------------------------------
// TestGenerate - Two-paragraph narrative
// ---------------------------------------------------------------------------

func TestGenerate_Golden(t *testing.T) {
	t.Parallel()

	want := "Aqua Voyager's world embodies otherworldly explorer of sonic depths. " +
		"This is Deep ocean, but not Earth's ocean — Like exploring an alien underwater world. " +
		"The visual language draws from organic flowing forms, liquid, ethereal, creating a sense of " +
		"oceanic, mysterious, hypnotic that mirrors Deep house, progressive, techno. " +
		"Deep blue, teal establish the foundational atmosphere, while cyan, purple punctuate " +
		"key moments of intensity and revelation." +
		"\n\n" +
		"This aesthetic oceanic, inviting deeper exploration rather than demanding immediate attention. " +
		"Every element flows organically, creating an experience that feels both mysterious and hypnotic. " +
		"It captures the essence of Deep house, progressive, techno — where like exploring an alien " +
		"underwater world, and the journey matters more than the destination."

	got, err := narrative.Generate(aquaVoyager())
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Generate() mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestGenerate_Properties(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		descriptors []string
		positioning string
		contains    []string
	}{
		{
			name:        "three descriptors",
			descriptors: []string{"oceanic", "mysterious", "hypnotic"},
			positioning: "otherworldly explorer of sonic depths",
			contains:    []string{"feels both mysterious and hypnotic"},
		},
		{
			name:        "more than three uses the first three",
			descriptors: []string{"a", "b", "c", "d"},
			contains:    []string{"a sense of a, b, c that mirrors"},
		},
		{
			name:        "one descriptor",
			descriptors: []string{"dark"},
			contains: []string{
				"a sense of dark that mirrors",
				"This aesthetic dark,",
				"feels both intentional and immersive",
			},
		},
		{
			name:        "no descriptors",
			descriptors: []string{},
			contains: []string{
				"This aesthetic pulls you in,",
				"feels both intentional and immersive",
			},
		},
		{
			name:        "empty positioning uses default",
			descriptors: []string{"x"},
			positioning: "",
			contains:    []string{"embodies a unique sonic journey."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q := aquaVoyager()
			q.CoreDescriptors = tt.descriptors
			q.BrandPositioning = tt.positioning

			got, err := narrative.Generate(q)
			if err != nil {
				t.Fatal(err)
			}
			if n := strings.Count(got, "\n\n"); n != 1 {
				t.Errorf("paragraph separators = %d, want 1", n)
			}
			if !strings.Contains(got, q.DJName) {
				t.Errorf("narrative does not contain the DJ name %q", q.DJName)
			}
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("narrative missing %q\n got: %q", s, got)
				}
			}
		})
	}
}

func TestGenerate_MissingField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edit  func(*brand.Questionnaire)
		field string
	}{
		{"name", func(q *brand.Questionnaire) { q.DJName = "" }, brand.FieldDJName},
		{"place", func(q *brand.Questionnaire) { q.PhysicalPlace = "" }, brand.FieldPhysicalPlace},
		{"descriptors", func(q *brand.Questionnaire) { q.CoreDescriptors = nil }, brand.FieldCoreDescriptors},
		{"accents", func(q *brand.Questionnaire) { q.ColorPreferences.Accents = nil }, brand.FieldAccentColors},
		{"textures", func(q *brand.Questionnaire) { q.FormsAndTextures = nil }, brand.FieldFormsAndTextures},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q := aquaVoyager()
			tt.edit(&q)
			_, err := narrative.Generate(q)

			var mfe *brand.MissingFieldError
			if !errors.As(err, &mfe) {
				t.Fatalf("Generate() error = %v, want *MissingFieldError", err)
			}
			if mfe.Field != tt.field {
				t.Errorf("Field = %q, want %q", mfe.Field, tt.field)
			}
		})
	}
}

func TestGenerate_EmptyPrimaryList(t *testing.T) {
	t.Parallel()

	q := aquaVoyager()
	q.ColorPreferences.Primary = []string{}

	got, err := narrative.Generate(q)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "mirrors Deep house, progressive, techno.  establish") {
		t.Errorf("empty primary list should leave an empty slot, got %q", got)
	}
}

func TestForDeck(t *testing.T) {
	t.Parallel()

	q := aquaVoyager()
	q.BrandNarrative = "Hand-written story."
	got, err := narrative.ForDeck(q)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hand-written story." {
		t.Errorf("ForDeck() = %q, want the questionnaire narrative", got)
	}

	q.BrandNarrative = ""
	generated, _ := narrative.Generate(q)
	got, err = narrative.ForDeck(q)
	if err != nil {
		t.Fatal(err)
	}
	if got != generated {
		t.Error("ForDeck() without brand_narrative should equal Generate()")
	}
}

// ---------------------------------------------------------------------------
// TestPaletteBlurb - Fallback palette description
// ---------------------------------------------------------------------------

func TestPaletteBlurb(t *testing.T) {
	t.Parallel()

	q := brand.Questionnaire{
		MusicStyle:      "Electronic techno",
		CoreDescriptors: []string{"dark", "minimal", "hypnotic"},
		EmotionalTarget: "A trance-like state",
	}
	p := brand.Palette{
		Primary: brand.NamedColor{Name: "Obsidian Black", Hex: "#0A0A0A"},
		Palette: []brand.NamedColor{
			{Name: "Rust Orange", Hex: "#D35400"},
			{Name: "Concrete Gray", Hex: "#7F8C8D"},
			{Name: "Black", Hex: "#000000"},
			{Name: "Signal Red", Hex: "#C0392B"},
		},
	}

	got, err := narrative.PaletteBlurb(p, q)
	if err != nil {
		t.Fatal(err)
	}

	if n := utf8.RuneCountInString(got); n != narrative.BlurbLimit {
		t.Errorf("blurb length = %d runes, want %d", n, narrative.BlurbLimit)
	}
	wantPrefix := "This brand embodies dark, minimal, hypnotic energy through its color palette. " +
		"Obsidian Black serves as the foundational anchor, establishing the core atmosphere of sonic journey. " +
		"Supporting tones — rust orange, concrete gray — create depth and nuance, evoking a trance-like state."
	if !strings.HasPrefix(got, wantPrefix) {
		t.Errorf("blurb prefix mismatch\n got: %q", got)
	}
	if !strings.Contains(got, "\n\nWithin this carefully curated world, moments of intensity emerge. Concrete gray and signal red cut") {
		t.Errorf("accent sentence missing\n got: %q", got)
	}
	if !strings.HasSuffix(got, "emotional peaks witho...") {
		t.Errorf("blurb should be truncated with ellipsis, got suffix %q", got[len(got)-30:])
	}
}

func TestPaletteBlurb_MissingField(t *testing.T) {
	t.Parallel()

	_, err := narrative.PaletteBlurb(brand.Palette{}, brand.Questionnaire{MusicStyle: "x"})
	if !errors.Is(err, brand.ErrMissingField) {
		t.Errorf("PaletteBlurb() error = %v, want ErrMissingField", err)
	}
}

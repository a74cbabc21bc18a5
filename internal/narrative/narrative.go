// Package narrative assembles the brand story text shown on the deck.
package narrative

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jtohta/creative-direction-decks-skill/internal/brand"
)

// DefaultPositioning stands in for an absent or empty brand_positioning.
const DefaultPositioning = "a unique sonic journey"

// Fallback words for the second paragraph when fewer than three
// descriptors are given.
const (
	fallbackFirst  = "pulls you in"
	fallbackSecond = "intentional"
	fallbackThird  = "immersive"
)

// BlurbLimit is the longest palette blurb that fits the palette slide.
const BlurbLimit = 620

// required lists the questionnaire fields Generate reads.
var required = []string{
	brand.FieldDJName,
	brand.FieldPhysicalPlace,
	brand.FieldEmotionalTarget,
	brand.FieldCoreDescriptors,
	brand.FieldPrimaryColors,
	brand.FieldAccentColors,
	brand.FieldFormsAndTextures,
	brand.FieldMusicStyle,
}

// Generate returns a two-paragraph narrative separated by one blank line.
// A short descriptor list is tolerated; an absent required field is a
// *brand.MissingFieldError.
func Generate(q brand.Questionnaire) (string, error) {
	if err := q.Require(required...); err != nil {
		return "", err
	}

	positioning := or(q.BrandPositioning, DefaultPositioning)

	para1 := fmt.Sprintf(
		"%s's world embodies %s. This is %s — %s. "+
			"The visual language draws from %s, creating a sense of "+
			"%s that mirrors %s. %s "+
			"establish the foundational atmosphere, while %s punctuate "+
			"key moments of intensity and revelation.",
		q.DJName, positioning, q.PhysicalPlace, q.EmotionalTarget,
		strings.Join(q.FormsAndTextures, ", "),
		strings.Join(firstN(q.CoreDescriptors, 3), ", "), q.MusicStyle,
		capitalize(strings.Join(q.ColorPreferences.Primary, ", ")),
		strings.Join(q.ColorPreferences.Accents, ", "),
	)

	para2 := fmt.Sprintf(
		"This aesthetic %s, inviting deeper exploration rather than "+
			"demanding immediate attention. Every element flows organically, creating an "+
			"experience that feels both %s and %s. It captures the "+
			"essence of %s — where %s, and the journey matters "+
			"more than the destination.",
		at(q.CoreDescriptors, 0, fallbackFirst),
		at(q.CoreDescriptors, 1, fallbackSecond),
		at(q.CoreDescriptors, 2, fallbackThird),
		q.MusicStyle, strings.ToLower(q.EmotionalTarget),
	)

	return para1 + "\n\n" + para2, nil
}

// ForDeck returns the questionnaire's own brand_narrative when set, and the
// generated narrative otherwise.
func ForDeck(q brand.Questionnaire) (string, error) {
	if q.BrandNarrative != "" {
		return q.BrandNarrative, nil
	}
	return Generate(q)
}

// PaletteBlurb describes a palette for the palette slide when the colors
// file carries no description. The result is at most BlurbLimit runes.
func PaletteBlurb(p brand.Palette, q brand.Questionnaire) (string, error) {
	if err := q.Require(brand.FieldCoreDescriptors, brand.FieldEmotionalTarget, brand.FieldMusicStyle); err != nil {
		return "", err
	}

	var names []string
	for _, c := range p.Palette {
		n := strings.ToLower(c.Name)
		if n != "black" && n != "white" {
			names = append(names, n)
		}
	}

	para1 := fmt.Sprintf(
		"This brand embodies %s energy through its color palette. "+
			"%s serves as the foundational anchor, establishing the core atmosphere of %s. "+
			"Supporting tones — %s — create depth and nuance, evoking %s. "+
			"These colors speak to a sonic identity rooted in %s. "+
			"It's not trying to overwhelm — it invites exploration through carefully balanced contrast and mood.",
		strings.Join(firstN(q.CoreDescriptors, 3), ", "),
		p.Primary.Name, or(q.BrandPositioning, "sonic journey"),
		strings.Join(firstN(names, 2), ", "),
		strings.ToLower(q.EmotionalTarget), q.MusicStyle,
	)

	para2 := fmt.Sprintf(
		"Within this carefully curated world, moments of intensity emerge. "+
			"%s cut through the atmosphere, adding punctuation and emotional peaks without disrupting the flow. "+
			"Used strategically, these accents mark transitions and create visual rhythm that mirrors the %s quality of the music. "+
			"In a brand defined by %s and %s, these colors become signatures — "+
			"symbols of dynamic energy within a landscape of intentional restraint.",
		capitalize(strings.Join(lastN(names, 2), " and ")),
		or(at(q.CoreDescriptors, 0, ""), "hypnotic"),
		or(at(q.CoreDescriptors, 1, ""), "depth"),
		or(at(q.CoreDescriptors, 2, ""), "immersion"),
	)

	return truncate(para1+"\n\n"+para2, BlurbLimit), nil
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func lastN(s []string, n int) []string {
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}

// at returns s[i], or fallback when s is too short.
func at(s []string, i int, fallback string) string {
	if i < len(s) {
		return s[i]
	}
	return fallback
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// capitalize uppercases the first rune only; the rest is left as is.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// truncate cuts s to limit runes, ending in "..." when cut.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-3]) + "..."
}

// Package slides composes the brand guide deck: a moodboard slide, a color
// palette slide and a visual pillars slide, each at fixed positions.
package slides

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jtohta/creative-direction-decks-skill/internal/brand"
	"github.com/jtohta/creative-direction-decks-skill/internal/color"
	"github.com/jtohta/creative-direction-decks-skill/internal/layout"
	"github.com/jtohta/creative-direction-decks-skill/internal/narrative"
	"github.com/jtohta/creative-direction-decks-skill/internal/pptx"
)

// Font faces. Viewers without them substitute their own.
const (
	TitleFace = "Fjalla One"
	BodyFace  = "Helvetica Neue"
)

// Author is written to the document properties.
const Author = "DJ Brand Guide Generator"

// nearDuplicateThreshold is the CIEDE2000 distance under which two palette
// colors are reported as hard to tell apart.
const nearDuplicateThreshold = 0.03

// ImageSource loads an image file as PNG bytes.
type ImageSource interface {
	Load(path string) ([]byte, error)
}

// Deck is everything a brand guide is built from. Palette and Pillars are
// optional; their slides are skipped when absent.
type Deck struct {
	Questionnaire brand.Questionnaire
	Prompts       []brand.ImagePrompt
	Palette       *brand.Palette
	Pillars       []brand.Pillar
	// Images are discovered image files. Those no prompt references fill
	// the slots whose prompt has no image of its own, in order.
	Images []string
}

// Composer builds presentations. Log must not be nil; use zap.NewNop to
// discard diagnostics.
type Composer struct {
	Images ImageSource
	Log    *zap.Logger
	// Exists reports whether a prompt's own image path is usable.
	Exists func(path string) bool
}

// NewComposer returns a Composer that checks prompt image paths on disk.
func NewComposer(images ImageSource, log *zap.Logger) *Composer {
	return &Composer{Images: images, Log: log, Exists: fileExists}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Compose builds the deck: moodboard first, then palette, then pillars.
func (c *Composer) Compose(d Deck) (*pptx.Presentation, error) {
	if err := d.Questionnaire.Require(brand.FieldDJName); err != nil {
		return nil, err
	}
	if d.Palette != nil {
		if err := d.Palette.Validate(); err != nil {
			return nil, err
		}
	}

	p := pptx.New(pptx.Inches(layout.CanvasWidth), pptx.Inches(layout.CanvasHeight))
	p.Title = d.Questionnaire.DJName + " - Brand Guide"
	p.Author = Author

	if err := c.moodboard(p.AddSlide(), d); err != nil {
		return nil, err
	}
	if d.Palette != nil {
		if err := c.palette(p.AddSlide(), *d.Palette, d.Questionnaire); err != nil {
			return nil, err
		}
	}
	if len(d.Pillars) > 0 {
		c.pillars(p.AddSlide(), d.Pillars)
	}
	return p, nil
}

func frame(r layout.Rect) pptx.Rect {
	return pptx.InchRect(r.X, r.Y, r.W, r.H)
}

// ---------------------------------------------------------------------------
// Moodboard
// ---------------------------------------------------------------------------

func (c *Composer) moodboard(s *pptx.Slide, d Deck) error {
	q := d.Questionnaire
	c.Log.Debug("moodboard images", zap.Int("discovered", len(d.Images)), zap.Int("prompts", len(d.Prompts)))

	s.AddTextBox(pptx.TextBox{
		Frame: pptx.InchRect(0.5, 0.3, 9, 0.5),
		Text:  strings.ToUpper(q.DJName) + " - OVERALL BRAND MOODBOARD",
		Font:  pptx.Font{Face: TitleFace, Size: 24, Bold: true, Color: "000000"},
	})

	spare := spareImages(d.Images, d.Prompts)
	for i, pr := range d.Prompts {
		slot := layout.MoodboardSlot(i)
		s.AddTextBox(pptx.TextBox{
			Frame: frame(slot.Label),
			Text:  "[" + pr.Label + "]",
			Font:  pptx.Font{Face: TitleFace, Size: 10, Bold: true, Color: "666666"},
		})
		c.slotContent(s, i, pr, slot.Content, &spare)
	}

	text, err := narrative.ForDeck(q)
	if err != nil {
		return fmt.Errorf("brand narrative: %w", err)
	}
	top := layout.NarrativeTop(len(d.Prompts))
	s.AddTextBox(pptx.TextBox{
		Frame: frame(layout.NarrativeHeading(top)),
		Text:  "BRAND NARRATIVE",
		Font:  pptx.Font{Face: TitleFace, Size: 12, Bold: true, Color: "000000"},
	})
	s.AddTextBox(pptx.TextBox{
		Frame: frame(layout.NarrativeBody(top)),
		Text:  text,
		Font:  pptx.Font{Face: BodyFace, Size: 10, Color: "333333"},
		Wrap:  true,
	})
	return nil
}

// spareImages returns the discovered images no prompt claims as its own,
// in discovery order.
func spareImages(discovered []string, prompts []brand.ImagePrompt) []string {
	claimed := make(map[string]bool, len(prompts))
	for _, pr := range prompts {
		if p := pr.LocalImage(); p != "" {
			claimed[samePath(p)] = true
		}
	}
	var spare []string
	for _, d := range discovered {
		if !claimed[samePath(d)] {
			spare = append(spare, d)
		}
	}
	return spare
}

func samePath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// slotContent places a prompt's image, or the prompt text when there is no
// usable image. A prompt's own image wins; otherwise the next spare
// discovered image is taken from *spare.
func (c *Composer) slotContent(s *pptx.Slide, i int, pr brand.ImagePrompt, box layout.Rect, spare *[]string) {
	path := ""
	switch {
	case pr.LocalImage() != "" && c.Exists(pr.LocalImage()):
		path = pr.LocalImage()
	case len(*spare) > 0:
		path = (*spare)[0]
		*spare = (*spare)[1:]
	}

	if path != "" {
		data, err := c.Images.Load(path)
		if err == nil {
			c.Log.Debug("slot image", zap.Int("slot", i), zap.String("path", path))
			s.AddPicture(frame(layout.FitAspect(box, layout.ImageAspect)), data, pr.Label)
			return
		}
		c.Log.Warn("image failed to load, using prompt text", zap.Int("slot", i), zap.String("path", path), zap.Error(err))
	} else {
		c.Log.Debug("no image for slot, using prompt text", zap.Int("slot", i))
	}

	s.AddTextBox(pptx.TextBox{
		Frame: frame(box),
		Text:  pr.Prompt,
		Font:  pptx.Font{Face: BodyFace, Size: 9, Color: "333333"},
		Wrap:  true,
		Fill:  "F5F5F5",
		Line:  &pptx.Line{Color: "CCCCCC", Width: 1},
	})
}

// ---------------------------------------------------------------------------
// Color palette
// ---------------------------------------------------------------------------

func (c *Composer) palette(s *pptx.Slide, pal brand.Palette, q brand.Questionnaire) error {
	hexes := pal.Hexes()
	for _, pair := range color.NearDuplicates(hexes, nearDuplicateThreshold) {
		c.Log.Warn("palette colors are nearly indistinguishable",
			zap.String("a", hexes[pair.I]), zap.String("b", hexes[pair.J]))
	}

	s.AddTextBox(pptx.TextBox{
		Frame: frame(layout.PaletteTitle),
		Text:  "BRAND COLOR PALETTE",
		Font:  pptx.Font{Face: TitleFace, Size: 24, Bold: true, Color: "000000"},
		Align: pptx.AlignCenter,
	})

	primary, err := color.ParseHex(pal.Primary.Hex)
	if err != nil {
		return err
	}
	s.AddShape(pptx.Shape{
		Geometry: pptx.GeomRoundRect,
		Frame:    frame(layout.PrimaryBlock),
		Fill:     primary.Hex(),
	})

	// The overlay is white whatever the primary color is.
	if primary.IsLight() {
		c.Log.Warn("primary color is light; white overlay text may be hard to read",
			zap.String("hex", pal.Primary.Hex))
	}
	s.AddTextBox(pptx.TextBox{
		Frame: frame(layout.PrimaryLabel),
		Text:  "[PRIMARY POP COLOR]",
		Font:  pptx.Font{Face: TitleFace, Size: 20, Bold: true, Color: "FFFFFF"},
	})
	s.AddTextBox(pptx.TextBox{
		Frame: frame(layout.PrimaryDetail),
		Text:  primary.CMYK().Label(pal.Primary.Hex),
		Font:  pptx.Font{Face: BodyFace, Size: 12, Color: "FFFFFF"},
	})

	for i, nc := range pal.Palette {
		rgb, err := color.ParseHex(nc.Hex)
		if err != nil {
			return err
		}
		bar, text := layout.PaletteBar(i)

		textColor := "FFFFFF"
		var border *pptx.Line
		if rgb.IsLight() {
			textColor = "000000"
			border = &pptx.Line{Color: "CCCCCC", Width: 1}
		}

		s.AddShape(pptx.Shape{
			Geometry: pptx.GeomRoundRect,
			Frame:    frame(bar),
			Fill:     rgb.Hex(),
			Line:     border,
		})
		s.AddTextBox(pptx.TextBox{
			Frame:  frame(text),
			Text:   rgb.CMYK().Label(nc.Hex),
			Font:   pptx.Font{Face: BodyFace, Size: 10, Color: textColor},
			Anchor: pptx.AnchorTop,
		})
	}

	blurb := pal.Description
	if blurb == "" {
		blurb, err = narrative.PaletteBlurb(pal, q)
		if err != nil {
			return fmt.Errorf("palette description: %w", err)
		}
	}
	s.AddTextBox(pptx.TextBox{
		Frame: frame(layout.PaletteBlurb),
		Text:  blurb,
		Font:  pptx.Font{Face: BodyFace, Size: 8.5, Color: "000000"},
		Wrap:  true,
	})
	return nil
}

// ---------------------------------------------------------------------------
// Visual pillars
// ---------------------------------------------------------------------------

func (c *Composer) pillars(s *pptx.Slide, pillars []brand.Pillar) {
	s.AddTextBox(pptx.TextBox{
		Frame: pptx.InchRect(0.5, 0.3, 9, 0.5),
		Text:  "BRAND VISUAL PILLARS",
		Font:  pptx.Font{Face: TitleFace, Size: 24, Bold: true, Color: "000000"},
	})
	s.AddTextBox(pptx.TextBox{
		Frame: pptx.InchRect(0.5, 0.9, 3, 0.3),
		Text:  "[ VISUAL BRAND PILLARS ]",
		Font:  pptx.Font{Face: TitleFace, Size: 10, Bold: true, Color: "666666"},
	})
	s.AddTextBox(pptx.TextBox{
		Frame: pptx.InchRect(4.0, 0.9, 5.5, 0.4),
		Text:  "The visual themes and motifs that define the brand's aesthetic direction.",
		Font:  pptx.Font{Face: BodyFace, Size: 9, Italic: true, Color: "666666"},
		Wrap:  true,
	})

	h, v := layout.PillarDividers()
	s.AddShape(pptx.Shape{Frame: frame(h), Fill: "C8C8C8"})
	s.AddShape(pptx.Shape{Frame: frame(v), Fill: "C8C8C8"})

	if len(pillars) > layout.MaxPillars {
		c.Log.Debug("extra pillars not shown", zap.Int("given", len(pillars)), zap.Int("shown", layout.MaxPillars))
		pillars = pillars[:layout.MaxPillars]
	}
	quads := layout.PillarQuadrants()
	for i, pl := range pillars {
		q := quads[i]
		s.AddTextBox(pptx.TextBox{
			Frame: frame(q),
			Text:  strings.ToUpper(pl.Name),
			Font:  pptx.Font{Face: TitleFace, Size: 18, Bold: true, Color: "000000"},
			Align: pptx.AlignCenter,
			Wrap:  true,
			Insets: &pptx.Insets{
				Left:  pptx.Inches(0.2),
				Top:   pptx.Inches(layout.PillarTopMargin(q.H)),
				Right: pptx.Inches(0.2),
			},
		})
	}

	s.AddTextBox(pptx.TextBox{
		Frame: pptx.InchRect(0.5, 5.2, 7, 0.3),
		Text:  "These pillars guide all visual decision-making for the brand identity.",
		Font:  pptx.Font{Face: BodyFace, Size: 8, Color: "999999"},
	})
	s.AddTextBox(pptx.TextBox{
		Frame: pptx.InchRect(9.0, 5.2, 0.5, 0.3),
		Text:  "03",
		Font:  pptx.Font{Face: BodyFace, Size: 10, Color: "999999"},
		Align: pptx.AlignRight,
	})
}

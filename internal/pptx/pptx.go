// Package pptx writes PresentationML (.pptx) files containing text boxes,
// preset shapes and PNG pictures placed at absolute positions on blank
// slides. Fonts are referenced by name and never embedded.
package pptx

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Length conversions to English Metric Units.
const (
	EMUPerInch = 914400
	EMUPerPt   = 12700
)

// ErrInvalidColor indicates a color is not six hex digits.
var ErrInvalidColor = errors.New("invalid color")

// ErrNoSlides indicates Save was called on an empty presentation.
var ErrNoSlides = errors.New("presentation has no slides")

// Inches converts inches to EMU, rounding to the nearest unit.
func Inches(in float64) int64 {
	return int64(math.Round(in * EMUPerInch))
}

// Points converts points to EMU, rounding to the nearest unit.
func Points(pt float64) int64 {
	return int64(math.Round(pt * EMUPerPt))
}

// Rect is a position and size in EMU.
type Rect struct {
	X, Y, W, H int64
}

// InchRect builds a Rect from inch values.
func InchRect(x, y, w, h float64) Rect {
	return Rect{X: Inches(x), Y: Inches(y), W: Inches(w), H: Inches(h)}
}

// Geometry is a preset shape geometry.
type Geometry string

// Supported geometries.
const (
	GeomRect      Geometry = "rect"
	GeomRoundRect Geometry = "roundRect"
)

// Align is horizontal paragraph alignment.
type Align string

const (
	AlignLeft   Align = "l"
	AlignCenter Align = "ctr"
	AlignRight  Align = "r"
)

// Anchor is vertical text alignment inside a box.
type Anchor string

const (
	AnchorTop    Anchor = "t"
	AnchorMiddle Anchor = "ctr"
	AnchorBottom Anchor = "b"
)

// Font describes a text run. Size is in points; Color is "RRGGBB" with an
// optional leading '#'.
type Font struct {
	Face   string
	Size   float64
	Bold   bool
	Italic bool
	Color  string
}

// Line is a solid outline. Width is in points.
type Line struct {
	Color string
	Width float64
}

// Insets are text body margins in EMU.
type Insets struct {
	Left, Top, Right, Bottom int64
}

// DefaultInsets are the PowerPoint defaults (0.1in sides, 0.05in top/bottom).
var DefaultInsets = Insets{Left: 91440, Top: 45720, Right: 91440, Bottom: 45720}

// TextBox is a text frame. Each '\n' in Text starts a new paragraph.
type TextBox struct {
	Frame  Rect
	Text   string
	Font   Font
	Align  Align
	Anchor Anchor
	// Wrap enables word wrap; otherwise text runs on one line.
	Wrap bool
	// Insets overrides DefaultInsets when non-nil.
	Insets *Insets
	// Fill is the background color, empty for none.
	Fill string
	Line *Line
}

// Shape is a filled preset geometry.
type Shape struct {
	Geometry Geometry
	Frame    Rect
	Fill     string
	// Line is the outline, nil for none.
	Line *Line
}

// Presentation is an in-memory deck. It is not safe for concurrent use.
type Presentation struct {
	Width, Height int64
	Title         string
	Author        string

	slides []*Slide
	media  [][]byte
}

// New returns an empty presentation with the given slide size in EMU.
func New(width, height int64) *Presentation {
	return &Presentation{Width: width, Height: height}
}

// Slides returns the number of slides added so far.
func (p *Presentation) Slides() int {
	return len(p.slides)
}

// AddSlide appends a blank slide.
func (p *Presentation) AddSlide() *Slide {
	s := &Slide{pres: p, nextID: 2}
	p.slides = append(p.slides, s)
	return s
}

// Slide is one slide. Elements are drawn in the order they are added.
type Slide struct {
	pres     *Presentation
	body     strings.Builder
	nextID   int
	pictures []int // media indexes, in relationship order
	err      error
}

func (s *Slide) id() int {
	id := s.nextID
	s.nextID++
	return id
}

// AddTextBox draws a text box. An invalid color is recorded and reported
// by Save.
func (s *Slide) AddTextBox(tb TextBox) {
	if err := s.check(tb.Font.Color, tb.Fill, lineColor(tb.Line)); err != nil {
		return
	}
	writeTextBox(&s.body, s.id(), tb)
}

// AddShape draws a preset shape.
func (s *Slide) AddShape(sh Shape) {
	if err := s.check(sh.Fill, lineColor(sh.Line)); err != nil {
		return
	}
	writeShape(&s.body, s.id(), sh)
}

// AddPicture embeds PNG data stretched to frame.
func (s *Slide) AddPicture(frame Rect, png []byte, descr string) {
	s.pres.media = append(s.pres.media, png)
	s.pictures = append(s.pictures, len(s.pres.media))
	// rId1 is the slide layout.
	rel := fmt.Sprintf("rId%d", len(s.pictures)+1)
	writePicture(&s.body, s.id(), frame, rel, descr)
}

func (s *Slide) check(colors ...string) error {
	for _, c := range colors {
		if c == "" {
			continue
		}
		if _, err := normalizeColor(c); err != nil {
			if s.err == nil {
				s.err = err
			}
			return err
		}
	}
	return nil
}

func lineColor(l *Line) string {
	if l == nil {
		return ""
	}
	return l.Color
}

// normalizeColor returns c as six uppercase hex digits.
func normalizeColor(c string) (string, error) {
	c = strings.TrimPrefix(c, "#")
	if len(c) != 6 {
		return "", fmt.Errorf("%q: %w", c, ErrInvalidColor)
	}
	for _, r := range c {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return "", fmt.Errorf("%q: %w", c, ErrInvalidColor)
		}
	}
	return strings.ToUpper(c), nil
}

// Package layout holds the fixed slide geometry of the brand guide. All
// values are in inches on a 10 x 5.625 canvas (16:9).
package layout

import "math"

// Canvas size.
const (
	CanvasWidth  = 10.0
	CanvasHeight = 5.625
)

// ImageAspect is the aspect ratio images are fitted to.
const ImageAspect = 16.0 / 9.0

// PointsPerInch converts typographic points to inches.
const PointsPerInch = 72.0

// Rect is an axis-aligned box in inches.
type Rect struct {
	X, Y, W, H float64
}

// Pt converts points to inches.
func Pt(points float64) float64 {
	return points / PointsPerInch
}

// Inset shrinks r by dx on the left and right and dy on the top and bottom.
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// FitAspect returns the largest rect of the given aspect ratio that fits in
// box, centered on the axis that does not fill. A box wider than aspect is
// filled vertically; otherwise it is filled horizontally.
func FitAspect(box Rect, aspect float64) Rect {
	if box.W/box.H > aspect {
		w := box.H * aspect
		return Rect{X: box.X + (box.W-w)/2, Y: box.Y, W: w, H: box.H}
	}
	h := box.W / aspect
	return Rect{X: box.X, Y: box.Y + (box.H-h)/2, W: box.W, H: h}
}

// ---------------------------------------------------------------------------
// Moodboard slide
// ---------------------------------------------------------------------------

// Moodboard grid.
const (
	BoxWidth    = 4.25
	BoxHeight   = 2.0
	GridTop     = 1.0
	LeftX       = 0.5
	RightX      = 5.25
	GridGap     = 0.3
	LabelHeight = 0.3
	// LabelGap is the distance from a slot's label to its content.
	LabelGap = 0.35
)

// Slot is one moodboard cell: a label line above a content area.
type Slot struct {
	Label   Rect
	Content Rect
}

// MoodboardSlot returns the i-th cell of the two-column grid, filled row
// by row.
func MoodboardSlot(i int) Slot {
	row, col := i/2, i%2
	x := LeftX
	if col == 1 {
		x = RightX
	}
	y := GridTop + float64(row)*(BoxHeight+GridGap)
	return Slot{
		Label:   Rect{X: x, Y: y, W: BoxWidth, H: LabelHeight},
		Content: Rect{X: x, Y: y + LabelGap, W: BoxWidth, H: BoxHeight - LabelGap},
	}
}

// Rows returns the number of grid rows n slots occupy.
func Rows(n int) int {
	return (n + 1) / 2
}

// NarrativeTop is the y of the narrative heading for n slots: one gap plus
// 0.3in below the last row. With no slots the first row stands in.
// The result may lie below the canvas; nothing clips it here.
func NarrativeTop(n int) float64 {
	rows := max(Rows(n), 1)
	lastRowY := GridTop + float64(rows-1)*(BoxHeight+GridGap)
	return lastRowY + BoxHeight + GridGap + 0.3
}

// NarrativeHeading and NarrativeBody place the narrative block in the right
// column starting at top.
func NarrativeHeading(top float64) Rect {
	return Rect{X: RightX, Y: top, W: BoxWidth, H: 0.25}
}

func NarrativeBody(top float64) Rect {
	return Rect{X: RightX, Y: top + 0.3, W: BoxWidth, H: 1.2}
}

// ---------------------------------------------------------------------------
// Palette slide
// ---------------------------------------------------------------------------

// Palette slide boxes.
var (
	PaletteTitle  = Rect{X: 0.5, Y: 0.35, W: 8, H: 0.5}
	PrimaryBlock  = Rect{X: 0.4, Y: 1.15, W: 5.2, H: 2.3}
	PrimaryLabel  = Rect{X: 0.6, Y: 1.45, W: 4.8, H: 0.35}
	PrimaryDetail = Rect{X: 0.6, Y: 1.82, W: 4.8, H: 0.25}
	PaletteBlurb  = Rect{X: 0.4, Y: 3.6, W: 5.2, H: 1.35}
)

// Palette bar stack.
const (
	BarX      = 6.0
	BarTop    = 1.15
	BarWidth  = 3.6
	BarHeight = 0.42
	BarGap    = 0.07
)

// PaletteBar returns the i-th color bar and the text box inset on it.
func PaletteBar(i int) (bar, text Rect) {
	bar = Rect{X: BarX, Y: BarTop + float64(i)*(BarHeight+BarGap), W: BarWidth, H: BarHeight}
	return bar, bar.Inset(0.12, 0.08)
}

// ---------------------------------------------------------------------------
// Pillars slide
// ---------------------------------------------------------------------------

// Pillar grid.
var PillarGrid = Rect{X: 0.5, Y: 1.5, W: 9, H: 3.5}

// MaxPillars is the number of quadrants; further pillars are not shown.
const MaxPillars = 4

// DividerWidth is the thickness of the quadrant dividers.
var DividerWidth = Pt(1)

// PillarQuadrants returns the four quadrants in reading order: top-left,
// top-right, bottom-left, bottom-right.
func PillarQuadrants() [MaxPillars]Rect {
	g := PillarGrid
	w, h := g.W/2, g.H/2
	cx, cy := g.X+w, g.Y+h
	return [MaxPillars]Rect{
		{X: g.X, Y: g.Y, W: w, H: h},
		{X: cx, Y: g.Y, W: w, H: h},
		{X: g.X, Y: cy, W: w, H: h},
		{X: cx, Y: cy, W: w, H: h},
	}
}

// PillarDividers returns the horizontal and vertical divider bars, each
// centered on the grid's midline.
func PillarDividers() (horizontal, vertical Rect) {
	g := PillarGrid
	cx, cy := g.X+g.W/2, g.Y+g.H/2
	half := DividerWidth / 2
	horizontal = Rect{X: g.X, Y: cy - half, W: g.W, H: DividerWidth}
	vertical = Rect{X: cx - half, Y: g.Y, W: DividerWidth, H: g.H}
	return horizontal, vertical
}

// PillarTopMargin is the top inset that roughly centers one line of 18pt
// text in a quadrant of height h. It never goes negative.
func PillarTopMargin(h float64) float64 {
	return math.Max(0, h/2-Pt(12))
}

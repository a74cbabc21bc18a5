// Package color converts the hex colors of a brand palette into the RGB and
// CMYK views printed on the deck, and decides light/dark text contrast.
//
// A hex string is the canonical form. RGB and CMYK values are derived views
// and are never stored.
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a color with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// CMYK holds whole-number percentages (0-100).
type CMYK struct {
	C, M, Y, K int
}

// Luminance weights used for the light/dark decision.
// These are the perceptual (Rec. 601) weights, not the WCAG relative
// luminance formula. Changing them changes which palette bars get black text.
const (
	weightR = 0.299
	weightG = 0.587
	weightB = 0.114

	lightThreshold = 0.5
)

// ParseHex parses a 6-digit hex color with an optional leading '#'.
// Each byte is parsed independently as base 16.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return RGB{}, &FormatError{Input: s}
	}

	var ch [3]uint8
	for i := range ch {
		v, err := strconv.ParseUint(h[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, &FormatError{Input: s}
		}
		ch[i] = uint8(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// HexToRGB returns the channels of a hex color.
func HexToRGB(hex string) (r, g, b uint8, err error) {
	c, err := ParseHex(hex)
	if err != nil {
		return 0, 0, 0, err
	}
	return c.R, c.G, c.B, nil
}

// RGBToHex formats channels as uppercase "#RRGGBB".
func RGBToHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// Hex returns the uppercase "#RRGGBB" form of c.
func (c RGB) Hex() string {
	return RGBToHex(c.R, c.G, c.B)
}

// CMYK converts c to CMYK percentages.
//
// K is derived from the brightest channel. Pure black (K = 100) short-circuits
// to C = M = Y = 0. Each component is rounded independently, half to even.
func (c RGB) CMYK() CMYK {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	k := 1 - max(r, g, b)

	var cy, m, y float64
	if k != 1 {
		cy = (1 - r - k) / (1 - k)
		m = (1 - g - k) / (1 - k)
		y = (1 - b - k) / (1 - k)
	}

	return CMYK{
		C: percent(cy),
		M: percent(m),
		Y: percent(y),
		K: percent(k),
	}
}

// percent scales a 0-1 fraction to a whole percentage, rounding half to even.
func percent(f float64) int {
	return int(math.RoundToEven(f * 100))
}

// HexToCMYK converts a hex color to CMYK percentages.
func HexToCMYK(hex string) (CMYK, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return CMYK{}, err
	}
	return c.CMYK(), nil
}

// RGB re-derives channels from the rounded percentages.
// Rounding loses precision, so the result may differ from the original
// color by a few units per channel.
func (c CMYK) RGB() RGB {
	k := float64(c.K) / 100
	channel := func(v int) uint8 {
		return uint8(math.Round(255 * (1 - float64(v)/100) * (1 - k)))
	}
	return RGB{R: channel(c.C), G: channel(c.M), B: channel(c.Y)}
}

// Label renders hex and CMYK the way the palette slide prints them.
func (c CMYK) Label(hex string) string {
	return fmt.Sprintf("%s C: %d%% M: %d%% Y:%d%% K:%d%%", hex, c.C, c.M, c.Y, c.K)
}

// Luminance returns the weighted brightness of c in [0, 1].
func (c RGB) Luminance() float64 {
	return (weightR*float64(c.R) + weightG*float64(c.G) + weightB*float64(c.B)) / 255
}

// IsLight reports whether c reads as light, i.e. wants black text.
func (c RGB) IsLight() bool {
	return c.Luminance() > lightThreshold
}

// IsLightColor reports whether the hex color is light.
func IsLightColor(hex string) (bool, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return false, err
	}
	return c.IsLight(), nil
}

// Pair identifies two entries of a color list by index.
type Pair struct {
	I, J int
}

// NearDuplicates returns every pair of colors whose CIEDE2000 distance is
// below threshold. Unparseable entries are skipped; callers validate first.
func NearDuplicates(hexes []string, threshold float64) []Pair {
	parsed := make([]*colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			continue
		}
		parsed[i] = &colorful.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		}
	}

	var pairs []Pair
	for i := 0; i < len(parsed); i++ {
		if parsed[i] == nil {
			continue
		}
		for j := i + 1; j < len(parsed); j++ {
			if parsed[j] == nil {
				continue
			}
			if parsed[i].DistanceCIEDE2000(*parsed[j]) < threshold {
				pairs = append(pairs, Pair{I: i, J: j})
			}
		}
	}
	return pairs
}

// Package colour provides the colour science used by designkit: conversions
// between hex, RGB and HSL, WCAG contrast, derived colours and colour-vision
// simulation.
//
// Every function in this package is pure. Malformed hex input is never an
// error: conversions report it through a boolean and presentation helpers
// return their input unchanged.
package colour

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// hexPattern matches exactly six hex digits with an optional leading '#'.
var hexPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// RGB represents a color in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// HSL returns the colour in HSL space.
func (rgb RGB) HSL() HSL {
	return RGBToHSL(rgb)
}

// HSL represents a colour in HSL space.
// H is in [0,360), S and L are in [0,1].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// String returns the colour in CSS hsl() notation.
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", c.H, c.S*100, c.L*100)
}

// RGB converts the colour back to RGB.
func (c HSL) RGB() RGB {
	return HSLToRGB(c.H, c.S, c.L)
}

// ParseHex parses a six digit hex colour, with or without a leading '#'.
// Shorthand (#abc), alpha channels and named colours are rejected with ok
// set to false; a partial triple is never returned.
func ParseHex(hex string) (RGB, bool) {
	if !hexPattern.MatchString(hex) {
		return RGB{}, false
	}
	hex = strings.TrimPrefix(hex, "#")

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, false
	}

	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, true
}

// MustParseHex is like ParseHex but panics on malformed input.
// Intended for package-level constants and tests.
func MustParseHex(hex string) RGB {
	rgb, ok := ParseHex(hex)
	if !ok {
		panic(fmt.Sprintf("colour: invalid hex %q", hex))
	}
	return rgb
}

// IsHex reports whether hex is an accepted six digit hex colour.
func IsHex(hex string) bool {
	return hexPattern.MatchString(hex)
}

// NormaliseHex returns the canonical lowercase "#rrggbb" form of hex.
func NormaliseHex(hex string) (string, bool) {
	rgb, ok := ParseHex(hex)
	if !ok {
		return "", false
	}
	return rgb.Hex(), true
}

// RGBToHex formats three channels as "#rrggbb".
// Channels outside [0,255] are clamped rather than rejected.
func RGBToHex(r, g, b int) string {
	return RGB{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}.Hex()
}

// RGBToHSL converts RGB to HSL colour space.
// Achromatic colours (all channels equal) have hue and saturation of 0.
func RGBToHSL(rgb RGB) HSL {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	l := (maxVal + minVal) / 2.0

	if delta == 0 {
		return HSL{H: 0, S: 0, L: l}
	}

	var s float64
	if l > 0.5 {
		s = delta / (2.0 - maxVal - minVal)
	} else {
		s = delta / (maxVal + minVal)
	}

	var h float64
	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	case b:
		h = (r-g)/delta + 4
	}

	return HSL{H: h * 60, S: s, L: l}
}

// HSLToRGB converts HSL to RGB colour space.
// h is hue in degrees and is wrapped into [0,360); s and l are clamped to [0,1].
// Channels are rounded to the nearest integer.
func HSLToRGB(h, s, l float64) RGB {
	h = normaliseHue(h)
	s = clampUnit(s)
	l = clampUnit(l)

	if s == 0 {
		// Achromatic (grey).
		v := roundChannel(l * 255)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: roundChannel(hueToRGB(p, q, h+120) * 255),
		G: roundChannel(hueToRGB(p, q, h) * 255),
		B: roundChannel(hueToRGB(p, q, h-120) * 255),
	}
}

// hueToRGB is a helper for HSL to RGB conversion.
func hueToRGB(p, q, t float64) float64 {
	t = normaliseHue(t)

	if t < 60 {
		return p + (q-p)*t/60
	}
	if t < 180 {
		return q
	}
	if t < 240 {
		return p + (q-p)*(240-t)/60
	}
	return p
}

// HueDistance calculates the angular distance between two hues on the colour wheel.
// Returns a value between 0 and 180 degrees (shortest path around the wheel).
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(normaliseHue(h1) - normaliseHue(h2))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

func normaliseHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// roundChannel rounds half away from zero and clamps to [0,255].
func roundChannel(v float64) uint8 {
	return clampChannel(int(math.Round(v)))
}

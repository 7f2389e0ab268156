package colour

import (
	"fmt"
	"math"
)

// Level is a WCAG 2.1 compliance level for normal-size text.
type Level string

const (
	LevelAAA  Level = "AAA"
	LevelAA   Level = "AA"
	LevelFail Level = "Fail"
)

// Minimum contrast ratios for each level. The lower bound of each band is inclusive.
const (
	MinRatioAA  = 4.5
	MinRatioAAA = 7.0
)

// Fixed text colours returned by ContrastingTextColour.
const (
	DarkText  = "#333333"
	LightText = "#ffffff"
)

// ContrastResult is the ratio between two colours and the level it earns.
type ContrastResult struct {
	Ratio float64 `json:"ratio"`
	Level Level   `json:"level"`
}

// String returns the result as "X.XX:1 (LEVEL)".
func (r ContrastResult) String() string {
	return fmt.Sprintf("%s (%s)", FormatRatio(r.Ratio), r.Level)
}

// RelativeLuminance calculates the relative luminance of a colour according to WCAG 2.1.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG21/#dfn-relative-luminance.
func RelativeLuminance(rgb RGB) float64 {
	rs := gammaDecode(float64(rgb.R) / 255.0)
	gs := gammaDecode(float64(rgb.G) / 255.0)
	bs := gammaDecode(float64(rgb.B) / 255.0)

	return 0.2126*rs + 0.7152*gs + 0.0722*bs
}

// gammaDecode applies the sRGB transfer function to a channel in [0,1].
// The 0.03928 threshold is the WCAG 2.x value and must not be replaced with 0.04045.
func gammaDecode(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.1.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// The ratio is symmetric in its arguments.
func ContrastRatio(a, b RGB) float64 {
	l1 := RelativeLuminance(a)
	l2 := RelativeLuminance(b)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// ContrastRatioHex is ContrastRatio for hex strings.
// If either colour is malformed it returns 1, the ratio of no contrast.
func ContrastRatioHex(a, b string) float64 {
	ra, ok := ParseHex(a)
	if !ok {
		return 1
	}
	rb, ok := ParseHex(b)
	if !ok {
		return 1
	}
	return ContrastRatio(ra, rb)
}

// Classify maps a contrast ratio to a WCAG level.
func Classify(ratio float64) Level {
	switch {
	case ratio >= MinRatioAAA:
		return LevelAAA
	case ratio >= MinRatioAA:
		return LevelAA
	default:
		return LevelFail
	}
}

// Contrast computes the ratio between two colours and classifies it.
func Contrast(a, b RGB) ContrastResult {
	ratio := ContrastRatio(a, b)
	return ContrastResult{Ratio: ratio, Level: Classify(ratio)}
}

// ContrastHex is Contrast for hex strings, with the ContrastRatioHex default
// for malformed input.
func ContrastHex(a, b string) ContrastResult {
	ratio := ContrastRatioHex(a, b)
	return ContrastResult{Ratio: ratio, Level: Classify(ratio)}
}

// FormatRatio formats a ratio with two decimals, e.g. "4.54:1".
func FormatRatio(ratio float64) string {
	return fmt.Sprintf("%.2f:1", ratio)
}

// ContrastingTextColour picks a text colour for the given background.
// It is a binary threshold on luminance, not a search for the best contrast:
// DarkText when the background luminance is above 0.5, LightText otherwise.
// A malformed background yields DarkText.
func ContrastingTextColour(background string) string {
	rgb, ok := ParseHex(background)
	if !ok {
		return DarkText
	}
	if RelativeLuminance(rgb) > 0.5 {
		return DarkText
	}
	return LightText
}

// Package lab evaluates a background/text colour pair the way a reader sees
// it: measured contrast, WCAG level, and how the pair looks to a reader with
// deuteranopia.
package lab

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jmylchreest/designkit/internal/colour"
)

// Defaults for a fresh lab.
const (
	DefaultBackground = "#f5f5f5"
	DefaultText       = colour.DarkText
	DefaultLineHeight = 1.6
)

// Preview is a background/text pair with the line height it is shown at.
type Preview struct {
	Background string  `json:"background"`
	Text       string  `json:"text"`
	LineHeight float64 `json:"lineHeight"`
}

// Report is the result of analysing a colour pair.
type Report struct {
	Background string       `json:"bgColor"`
	Text       string       `json:"textColor"`
	Ratio      float64      `json:"ratio"`
	RatioText  string       `json:"ratioText"`
	Level      colour.Level `json:"level"`

	Normal       Preview `json:"normal"`
	Deuteranopia Preview `json:"deuteranopia"`
}

// Passes reports whether the pair meets at least AA.
func (r Report) Passes() bool {
	return r.Level != colour.LevelFail
}

// Analyse measures bg against text. Malformed colours are kept as given and
// measure 1:1 (Fail). A non-positive or non-finite lineHeight uses
// DefaultLineHeight.
func Analyse(bg, text string, lineHeight float64) Report {
	if !ValidLineHeight(lineHeight) {
		lineHeight = DefaultLineHeight
	}
	if hex, ok := colour.NormaliseHex(bg); ok {
		bg = hex
	}
	if hex, ok := colour.NormaliseHex(text); ok {
		text = hex
	}

	result := colour.ContrastHex(bg, text)
	return Report{
		Background: bg,
		Text:       text,
		Ratio:      result.Ratio,
		RatioText:  FormatRatio(result.Ratio),
		Level:      result.Level,
		Normal: Preview{
			Background: bg,
			Text:       text,
			LineHeight: lineHeight,
		},
		Deuteranopia: Preview{
			Background: colour.SimulateDeuteranopia(bg),
			Text:       colour.SimulateDeuteranopia(text),
			LineHeight: lineHeight,
		},
	}
}

// FormatRatio formats a ratio for display, e.g. "4.54 : 1".
func FormatRatio(ratio float64) string {
	return fmt.Sprintf("%.2f : 1", ratio)
}

// ParseLineHeight parses a unitless CSS line height such as "1.6".
// Empty input yields DefaultLineHeight.
func ParseLineHeight(s string) (float64, error) {
	if s == "" {
		return DefaultLineHeight, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid line height %q: %w", s, err)
	}
	if !ValidLineHeight(v) {
		return 0, fmt.Errorf("invalid line height %q: must be a positive finite number", s)
	}
	return v, nil
}

// ValidLineHeight reports whether v is a usable line height.
func ValidLineHeight(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

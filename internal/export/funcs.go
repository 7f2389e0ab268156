package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/jmylchreest/designkit/internal/colour"
)

// TemplateFuncs returns the functions available to export templates,
// including custom overrides.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Format conversion.
		"hex":       hexFunc,
		"hexNoHash": hexNoHashFunc,
		"rgb":       rgbFunc,
		"rgbSpaces": rgbSpacesFunc,
		"hsl":       hslFunc,

		// Colour adjustment.
		"lighten":    lightenFunc,
		"darken":     darkenFunc,
		"complement": colour.Complementary,
		"onColour":   colour.ContrastingTextColour,

		// Serialisation.
		"toJSON": toJSONFunc,

		// String manipulation with pipe-friendly argument order.
		"trimPrefix": trimPrefixFunc,
		"replace":    replaceFunc,
		"toLower":    strings.ToLower,
		"toUpper":    strings.ToUpper,
	}
}

func hexFunc(hex string) string {
	if n, ok := colour.NormaliseHex(hex); ok {
		return n
	}
	return hex
}

func hexNoHashFunc(hex string) string {
	return strings.TrimPrefix(hexFunc(hex), "#")
}

// rgbFunc formats as "rgb(r, g, b)".
func rgbFunc(hex string) (string, error) {
	c, ok := colour.ParseHex(hex)
	if !ok {
		return "", fmt.Errorf("invalid colour %q", hex)
	}
	return c.String(), nil
}

// rgbSpacesFunc formats as "r g b", the CSS colour level 4 channel form.
func rgbSpacesFunc(hex string) (string, error) {
	c, ok := colour.ParseHex(hex)
	if !ok {
		return "", fmt.Errorf("invalid colour %q", hex)
	}
	return fmt.Sprintf("%d %d %d", c.R, c.G, c.B), nil
}

func hslFunc(hex string) (string, error) {
	c, ok := colour.ParseHex(hex)
	if !ok {
		return "", fmt.Errorf("invalid colour %q", hex)
	}
	return c.HSL().String(), nil
}

// lightenFunc takes the percentage first so it can be piped: {{ .Main | lighten 10 }}.
func lightenFunc(percent float64, hex string) string {
	return colour.Lighten(hex, percent)
}

func darkenFunc(percent float64, hex string) string {
	return colour.Darken(hex, percent)
}

func toJSONFunc(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func trimPrefixFunc(prefix, s string) string {
	return strings.TrimPrefix(s, prefix)
}

func replaceFunc(old, new, s string) string {
	return strings.ReplaceAll(s, old, new)
}

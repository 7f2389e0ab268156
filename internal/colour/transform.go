package colour

import "math"

// Default adjustment used for the light and dark variants of a Shade.
const DefaultShadeStep = 20

// Shade is a colour with a lighter and a darker variant.
type Shade struct {
	Main  string `json:"main"`
	Light string `json:"light"`
	Dark  string `json:"dark"`
}

// Lighten moves each channel towards 255 by percent of the remaining distance.
// Percentages outside [0,100] extrapolate and are clamped at the channel
// boundary. Malformed hex is returned unchanged.
func Lighten(hex string, percent float64) string {
	rgb, ok := ParseHex(hex)
	if !ok {
		return hex
	}
	f := percent / 100
	return RGBToHex(
		int(math.Round(float64(rgb.R)+(255-float64(rgb.R))*f)),
		int(math.Round(float64(rgb.G)+(255-float64(rgb.G))*f)),
		int(math.Round(float64(rgb.B)+(255-float64(rgb.B))*f)),
	)
}

// Darken scales each channel by (1 - percent/100).
// Percentages outside [0,100] extrapolate and are clamped at the channel
// boundary. Malformed hex is returned unchanged.
func Darken(hex string, percent float64) string {
	rgb, ok := ParseHex(hex)
	if !ok {
		return hex
	}
	f := 1 - percent/100
	return RGBToHex(
		int(math.Round(float64(rgb.R)*f)),
		int(math.Round(float64(rgb.G)*f)),
		int(math.Round(float64(rgb.B)*f)),
	)
}

// Complementary rotates the hue by 180 degrees, keeping saturation and
// lightness. Malformed hex is returned unchanged.
func Complementary(hex string) string {
	rgb, ok := ParseHex(hex)
	if !ok {
		return hex
	}
	hsl := RGBToHSL(rgb)
	return HSLToRGB(math.Mod(hsl.H+180, 360), hsl.S, hsl.L).Hex()
}

// Shades returns hex with its DefaultShadeStep lighter and darker variants.
// Main is the canonical form of hex, or hex itself when malformed.
func Shades(hex string) Shade {
	main, ok := NormaliseHex(hex)
	if !ok {
		main = hex
	}
	return Shade{
		Main:  main,
		Light: Lighten(hex, DefaultShadeStep),
		Dark:  Darken(hex, DefaultShadeStep),
	}
}

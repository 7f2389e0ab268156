package colour

// SimulateDeuteranopia approximates how a colour appears with red-green
// colour-vision deficiency, using a fixed linear channel mix:
//
//	R' = 0.625R + 0.375G
//	G' = 0.7R   + 0.3G
//	B' = 0.3G   + 0.7B
//
// This is a preview approximation, not a colour-managed transform; no gamma
// handling is applied. Malformed hex is returned unchanged.
func SimulateDeuteranopia(hex string) string {
	rgb, ok := ParseHex(hex)
	if !ok {
		return hex
	}
	return simulateDeuteranopia(rgb).Hex()
}

func simulateDeuteranopia(rgb RGB) RGB {
	r := float64(rgb.R)
	g := float64(rgb.G)
	b := float64(rgb.B)

	return RGB{
		R: roundChannel(0.625*r + 0.375*g),
		G: roundChannel(0.7*r + 0.3*g),
		B: roundChannel(0.3*g + 0.7*b),
	}
}

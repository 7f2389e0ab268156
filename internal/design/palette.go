package design

import "github.com/jmylchreest/designkit/internal/colour"

// RoleShade is one colour role with its light and dark variants and the text
// colour to draw on it.
type RoleShade struct {
	Role string `json:"role"`
	colour.Shade
	OnColour string `json:"onColor"`
}

// Palette expands a ColorSystem into per-role shades, in Roles order.
// This is the nested presentation; the ColorSystem itself is the flat one.
func Palette(cs ColorSystem) []RoleShade {
	shades := make([]RoleShade, 0, len(Roles))
	for _, role := range Roles {
		hex, _ := cs.Get(role)
		shades = append(shades, RoleShade{
			Role:     role,
			Shade:    colour.Shades(hex),
			OnColour: colour.ContrastingTextColour(hex),
		})
	}
	return shades
}

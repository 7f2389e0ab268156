package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/jmylchreest/designkit/internal/colour"
)

const swatchWidth = 6

// painter renders colour swatches when the output is a colour-capable terminal
// and plain text otherwise.
type painter struct {
	enabled  bool
	renderer *lipgloss.Renderer
}

// newPainter decides whether w gets swatches. NO_COLOR disables them.
func (a *app) newPainter(w io.Writer) painter {
	enabled := !a.noColour && os.Getenv("NO_COLOR") == "" && isTerminal(w)
	return painter{enabled: enabled, renderer: lipgloss.NewRenderer(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// swatch returns a solid block of hex, or "" when swatches are off or hex is
// malformed.
func (p painter) swatch(hex string) string {
	if !p.enabled || !colour.IsHex(hex) {
		return ""
	}
	return p.renderer.NewStyle().
		Background(lipgloss.Color(hexOrSelf(hex))).
		Width(swatchWidth).
		Render("")
}

// sample renders text in fg on bg, as a reader would see it.
func (p painter) sample(bg, fg, text string) string {
	if !p.enabled || !colour.IsHex(bg) || !colour.IsHex(fg) {
		return text
	}
	return p.renderer.NewStyle().
		Background(lipgloss.Color(hexOrSelf(bg))).
		Foreground(lipgloss.Color(hexOrSelf(fg))).
		Padding(0, 1).
		Render(text)
}

// labelled prefixes hex with its swatch.
func (p painter) labelled(hex string) string {
	if s := p.swatch(hex); s != "" {
		return s + " " + hex
	}
	return hex
}

// hexOrSelf returns hex with a leading '#', which lipgloss requires.
func hexOrSelf(hex string) string {
	if n, ok := colour.NormaliseHex(hex); ok {
		return n
	}
	return hex
}

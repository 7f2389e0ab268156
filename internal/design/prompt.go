package design

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/jmylchreest/designkit/internal/colour"
	"github.com/jmylchreest/designkit/internal/knowledge"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

// User turns sent after the system prompt.
const (
	GuideUserMessage  = "Generate the design system for the requirements above as JSON."
	AdviceUserMessage = "Analyse the colour combination above."
)

var prompts = template.Must(template.New("prompts").Funcs(template.FuncMap{
	"json": indentJSON,
}).ParseFS(promptFS, "prompts/*.tmpl"))

// BuildGuidePrompt renders the system prompt for a design-system request.
// kb supplies the platform guideline and the colour group of the keyword;
// nil means the embedded default.
func BuildGuidePrompt(req GuideRequest, kb *knowledge.Base) (string, error) {
	if kb == nil {
		kb = knowledge.Default()
	}
	guideline, _ := kb.GuidelineFor(req.Platform)

	group, ok := kb.GroupForKeyword(req.Keyword)
	if !ok {
		group = knowledge.Group{KeyColours: knowledge.FallbackKeyColours}
	}

	primary := req.PrimaryColour
	if primary == "" {
		primary = kb.KeyColoursFor(req.Keyword)[0]
	}

	return render("guide.tmpl", map[string]any{
		"Request":   req,
		"Primary":   primary,
		"Guideline": guideline,
		"Group":     group,
		"MinRatio":  colour.MinRatioAA,
	})
}

// BuildAdvicePrompt renders the system prompt for an advice request. The
// measured ratio is included so the provider works from the same numbers.
func BuildAdvicePrompt(req AdviceRequest) (string, error) {
	result := colour.ContrastHex(req.Background, req.Text)
	return render("advice.tmpl", map[string]any{
		"Request":  req,
		"Platform": req.PlatformOrDefault(),
		"Ratio":    colour.FormatRatio(result.Ratio),
		"Level":    result.Level,
	})
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

func indentJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

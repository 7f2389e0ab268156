// Package export renders a colour system as source code for a stylesheet or
// script: CSS custom properties, SCSS variables, a JS module or JSON.
package export

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/designkit/internal/design"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Data is what every export template is executed with.
type Data struct {
	ColorSystem design.ColorSystem `json:"colorSystem"`

	// Roles is the colour system in display order with light and dark shades.
	Roles []design.RoleShade `json:"-"`
}

// NewData builds template data for cs.
func NewData(cs design.ColorSystem) Data {
	return Data{ColorSystem: cs, Roles: design.Palette(cs)}
}

// Exporter renders templates through a Loader.
type Exporter struct {
	loader *Loader
	logger hclog.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithTemplateDir sets the directory searched for template overrides. An
// empty dir disables overrides.
func WithTemplateDir(dir string) Option {
	return func(e *Exporter) {
		e.loader.WithCustomDir(dir)
	}
}

// WithLogger sets the exporter logger.
func WithLogger(l hclog.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l.Named("export")
			e.loader.WithLogger(e.logger)
		}
	}
}

// New creates an exporter. Without options only the embedded templates are used.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		loader: NewLoader(templates, "templates").WithCustomDir(""),
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Loader returns the template loader.
func (e *Exporter) Loader() *Loader {
	return e.loader
}

// Render renders cs in the given format.
func (e *Exporter) Render(format Format, cs design.ColorSystem) ([]byte, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}

	content, fromCustom, err := e.loader.Load(format.Filename())
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(string(format)).Funcs(TemplateFuncs()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s template: %w", format, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, NewData(cs)); err != nil {
		return nil, fmt.Errorf("failed to execute %s template: %w", format, err)
	}

	e.logger.Debug("rendered export", "format", format, "custom", fromCustom, "bytes", buf.Len())
	return buf.Bytes(), nil
}

// Render renders cs with the embedded templates.
func Render(format Format, cs design.ColorSystem) ([]byte, error) {
	return New().Render(format, cs)
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/designkit/internal/design"
	"github.com/jmylchreest/designkit/internal/export"
)

type exportOptions struct {
	input         string
	primary       string
	secondary     string
	background    string
	text          string
	format        export.Format
	output        string
	dumpTemplates bool
	force         bool
}

// templateDir is the configured template directory, or the default one that
// --dump-templates writes to.
func (a *app) templateDir() string {
	if a.cfg != nil && a.cfg.TemplateDir != "" {
		return a.cfg.TemplateDir
	}
	return export.DefaultTemplateDir()
}

// exporter builds an Exporter that reads overrides from templateDir.
func (a *app) exporter() *export.Exporter {
	return export.New(export.WithTemplateDir(a.templateDir()), export.WithLogger(a.logger))
}

func (a *app) newExportCmd() *cobra.Command {
	opts := exportOptions{format: export.FormatCSS}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a colour system as CSS, SCSS, JS or JSON",
		Long: `Export a colour system as code. The colour system is read from --input (a
design system or colour system JSON file, "-" for stdin) or built from the
colour flags; missing or malformed colours fall back to defaults.

Templates can be overridden by placing files in --template-dir, which defaults
to $XDG_CONFIG_HOME/designkit/templates. Use --dump-templates to write the
built-in templates there as a starting point.`,
		Example: `  designkit generate --service Blog --platform Web --keyword clean --json | designkit export --input - --format scss
  designkit export --primary '#6666ff' --secondary '#ff6b6b' --format js
  designkit export --dump-templates --template-dir ./templates`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.dumpTemplates {
				return a.dumpTemplates(cmd.OutOrStdout(), opts.force)
			}

			cs, err := a.readColorSystem(cmd, opts)
			if err != nil {
				return err
			}

			code, err := a.exporter().Render(opts.format, cs)
			if err != nil {
				return err
			}
			return a.writeOutput(cmd, opts.output, func(w io.Writer) error {
				_, err := w.Write(code)
				return err
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", `design system JSON file ("-" for stdin)`)
	flags.StringVar(&opts.primary, "primary", "", "primary colour")
	flags.StringVar(&opts.secondary, "secondary", "", "secondary colour")
	flags.StringVar(&opts.background, "background", "", "background colour")
	flags.StringVar(&opts.text, "text", "", "text colour")
	flags.VarP(&opts.format, "format", "f", "output format (css, scss, js, json)")
	flags.StringVarP(&opts.output, "output", "o", "", "write to a file instead of stdout")
	flags.String("template-dir", "", "directory of template overrides (default $XDG_CONFIG_HOME/designkit/templates)")
	flags.BoolVar(&opts.dumpTemplates, "dump-templates", false, "write the built-in templates to the template directory")
	flags.BoolVar(&opts.force, "force", false, "overwrite existing templates when dumping")
	cmd.MarkFlagsMutuallyExclusive("input", "dump-templates")
	return cmd
}

// readColorSystem resolves the colour system from --input and the colour
// flags, which override the input.
func (a *app) readColorSystem(cmd *cobra.Command, opts exportOptions) (design.ColorSystem, error) {
	var cs design.ColorSystem

	if opts.input != "" {
		var (
			data []byte
			err  error
		)
		if opts.input == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(opts.input)
		}
		if err != nil {
			return cs, fmt.Errorf("failed to read input: %w", err)
		}

		cs, err = decodeColorSystem(data)
		if err != nil {
			return cs, err
		}
	}

	for _, f := range []struct {
		value string
		dst   *string
	}{
		{opts.primary, &cs.Primary},
		{opts.secondary, &cs.Secondary},
		{opts.background, &cs.Background},
		{opts.text, &cs.Text},
	} {
		if f.value != "" {
			*f.dst = f.value
		}
	}

	if replaced := cs.Sanitise(design.DefaultColorSystem("")); len(replaced) > 0 {
		a.logger.Warn("using default colours", "roles", replaced)
	}
	return cs, nil
}

// decodeColorSystem accepts a full design system, an export JSON document or
// a bare colour system.
func decodeColorSystem(data []byte) (design.ColorSystem, error) {
	var doc struct {
		ColorSystem *design.ColorSystem `json:"colorSystem"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return design.ColorSystem{}, fmt.Errorf("failed to parse input: %w", err)
	}
	if doc.ColorSystem != nil {
		return *doc.ColorSystem, nil
	}

	var cs design.ColorSystem
	if err := json.Unmarshal(data, &cs); err != nil {
		return cs, fmt.Errorf("failed to parse input: %w", err)
	}
	return cs, nil
}

func (a *app) dumpTemplates(out io.Writer, force bool) error {
	loader := a.exporter().Loader()
	names, err := loader.ListEmbeddedTemplates()
	if err != nil {
		return err
	}
	for _, name := range names {
		path, err := loader.DumpTemplate(name, force)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, path)
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/designkit/internal/config"
	"github.com/jmylchreest/designkit/internal/design"
	"github.com/jmylchreest/designkit/internal/export"
	"github.com/jmylchreest/designkit/internal/knowledge"
	"github.com/jmylchreest/designkit/internal/session"
)

func (a *app) newKeywordsCmd() *cobra.Command {
	var (
		soft, static int
		all          bool
	)

	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "List mood keywords and their key colours",
		Long: `List the mood keywords for a position of the soft/hard and static/dynamic
sliders (0-100), or every mood group with --all.`,
		Example: `  designkit keywords --soft 20 --static 80
  designkit keywords --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := a.knowledgeBase(cmd.Context())
			if err != nil {
				return err
			}

			groups := kb.GroupNames()
			if !all {
				groups = []string{knowledge.QuadrantForMood(soft, static)}
			}

			out := cmd.OutOrStdout()
			p := a.newPainter(out)
			table := NewTable([]string{"Group", "Name", "Keywords", "Key colours"})
			table.SetColumnMaxWidth(2, 40)
			for _, name := range groups {
				g := kb.IRIColours[name]
				swatches := make([]string, 0, len(g.KeyColours))
				for _, hex := range g.KeyColours {
					swatches = append(swatches, p.labelled(hex))
				}
				table.AddRow([]string{name, g.Name, strings.Join(g.Keywords, ", "), strings.Join(swatches, " ")})
			}
			fmt.Fprint(out, table.Render())

			if all {
				fmt.Fprintf(out, "\nPlatforms: %s\n", strings.Join(kb.Platforms(), ", "))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&soft, "soft", session.DefaultMood.Soft, "soft (0) to hard (100)")
	cmd.Flags().IntVar(&static, "static", session.DefaultMood.Static, "static (0) to dynamic (100)")
	cmd.Flags().BoolVar(&all, "all", false, "list every group")
	return cmd
}

type generateOptions struct {
	service    string
	platform   string
	keyword    string
	primary    string
	soft       int
	static     int
	background string
	text       string
	asJSON     bool
	format     export.Format
	output     string
}

func (a *app) newGenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Draft a design system for a service, platform and mood",
		Long: `Draft a complete design system: colours, font pairing, UX copy, typography
and rationale. The draft comes from the configured provider, or from static
defaults when no provider is configured or the call fails.

--background and --text replace the draft's background and text colours the
way the colour lab does before the final report.`,
		Example: `  designkit generate --service "Meditation app" --platform iOS --keyword calm
  designkit generate --service Shop --platform Web --soft 80 --static 90 --keyword bold --primary '#e63946'
  designkit generate --service Blog --platform Web --keyword clean --export css`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.service, "service", "", "purpose of the service (required)")
	flags.StringVar(&opts.platform, "platform", "", "target platform, e.g. iOS, Android, Web (required)")
	flags.StringVar(&opts.keyword, "keyword", "", "mood keyword (required)")
	flags.StringVar(&opts.primary, "primary", "", "primary colour (default: the keyword's first key colour)")
	flags.IntVar(&opts.soft, "soft", session.DefaultMood.Soft, "soft (0) to hard (100)")
	flags.IntVar(&opts.static, "static", session.DefaultMood.Static, "static (0) to dynamic (100)")
	flags.StringVar(&opts.background, "background", "", "final background colour")
	flags.StringVar(&opts.text, "text", "", "final text colour")
	flags.BoolVar(&opts.asJSON, "json", false, "output JSON")
	flags.Var(&opts.format, "export", "print code in this format instead (css, scss, js, json)")
	flags.StringVarP(&opts.output, "output", "o", "", "write to a file instead of stdout")
	cmd.MarkFlagRequired("service")
	cmd.MarkFlagRequired("platform")
	cmd.MarkFlagRequired("keyword")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, opts generateOptions) error {
	ctx, cancel := a.withTimeout(cmd.Context())
	defer cancel()

	gen, err := a.generator(ctx)
	if err != nil {
		return err
	}

	s := session.New(gen.Knowledge(), session.WithLogger(a.logger.Named("session")))
	if err := s.SelectService(opts.service); err != nil {
		return err
	}
	if err := s.SelectPlatform(opts.platform); err != nil {
		return err
	}
	if keywords := s.SetMood(opts.soft, opts.static); cmd.Flags().Changed("soft") || cmd.Flags().Changed("static") {
		if !contains(keywords, opts.keyword) {
			a.logger.Warn("keyword is not in the selected mood", "keyword", opts.keyword, "mood_keywords", keywords)
		}
	}
	keyColours, err := s.SelectKeyword(opts.keyword)
	if err != nil {
		return err
	}
	primary := opts.primary
	if primary == "" && len(keyColours) > 0 {
		primary = keyColours[0]
		a.logger.Debug("using the keyword's key colour as primary", "primary", primary)
	}
	if err := s.SelectColour(primary); err != nil {
		return err
	}

	a.logger.Info("generating design system", "provider", gen.ProviderName(), "keyword", s.Keyword)
	draft, err := s.Generate(ctx, gen)
	if err != nil {
		return err
	}
	if draft.Fallback {
		a.logger.Warn("using fallback design system", "reason", draft.Error)
	}

	report, err := s.LoadDraftToLab()
	if err != nil {
		return err
	}
	if opts.background != "" || opts.text != "" {
		bg, text := report.Background, report.Text
		if opts.background != "" {
			bg = opts.background
		}
		if opts.text != "" {
			text = opts.text
		}
		report = s.SetLabColours(bg, text)
		if !report.Passes() {
			a.logger.Warn("final colours fail WCAG AA", "ratio", report.RatioText)
		}
	}

	final, err := s.Finalize()
	if err != nil {
		return err
	}
	a.logger.Debug("session complete", "step", s.Step())

	return a.writeOutput(cmd, opts.output, func(w io.Writer) error {
		switch {
		case opts.format != "":
			code, err := a.exporter().Render(opts.format, final.ColorSystem)
			if err != nil {
				return err
			}
			_, err = w.Write(code)
			return err
		case opts.asJSON:
			return writeJSON(w, final)
		default:
			printSystem(w, a.newPainter(w), final)
			printReport(w, a.newPainter(w), s.Lab())
			return nil
		}
	})
}

func printSystem(out io.Writer, p painter, sys *design.System) {
	if sys.Metadata != nil {
		fmt.Fprintf(out, "%s / %s / %s\n\n", sys.Metadata.Service, sys.Metadata.Platform, sys.Metadata.Keyword)
	}

	table := NewTable([]string{"Role", "Light", "Main", "Dark", "On colour"})
	for _, rs := range design.Palette(sys.ColorSystem) {
		table.AddRow([]string{rs.Role, p.labelled(rs.Light), p.labelled(rs.Main), p.labelled(rs.Dark), rs.OnColour})
	}
	fmt.Fprint(out, table.Render())

	fmt.Fprintf(out, "\nFonts:       %s / %s\n", sys.FontPairing.Headline, sys.FontPairing.Body)
	fmt.Fprintf(out, "Typography:  body %s, headline %s, line height %s\n",
		sys.Typography.BodySize, sys.Typography.HeadlineSize, sys.Typography.LineHeight)
	if len(sys.UXCopy.Navigation) > 0 {
		fmt.Fprintf(out, "Navigation:  %s\n", strings.Join(sys.UXCopy.Navigation, " | "))
	}
	if sys.UXCopy.CTA != "" {
		fmt.Fprintf(out, "CTA:         %s\n", p.sample(sys.ColorSystem.Primary, sys.ColorSystem.Text, sys.UXCopy.CTA))
	}
	if sys.DesignRationale != "" {
		fmt.Fprintf(out, "\n%s\n", sys.DesignRationale)
	}
	if sys.AccessibilityReport != "" {
		fmt.Fprintf(out, "%s\n", sys.AccessibilityReport)
	}
	fmt.Fprintln(out)
}

func (a *app) newRecommendCmd() *cobra.Command {
	var (
		platform string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "recommend <background> <text>",
		Short: "Get accessibility advice for a colour pair",
		Long: `Get accessibility advice for a text colour on a background. The contrast
ratio and WCAG level are always measured locally; the provider adds a
recommendation and suggested colours.`,
		Example: `  designkit recommend '#f5f5f5' '#999999' --platform iOS`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hexes, err := hexArgs(args)
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			gen, err := a.generator(ctx)
			if err != nil {
				return err
			}
			advice, err := gen.Advise(ctx, design.AdviceRequest{Background: hexes[0], Text: hexes[1], Platform: platform})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, advice)
			}

			p := a.newPainter(out)
			fmt.Fprintf(out, "Contrast:   %s (%s)\n", advice.ContrastRatio, advice.WCAGLevel)
			fmt.Fprintf(out, "Suggested:  %s  %s on %s\n",
				p.sample(advice.SuggestedBgColor, advice.SuggestedTextColor, "Aa"),
				advice.SuggestedTextColor, advice.SuggestedBgColor)
			fmt.Fprintf(out, "\n%s\n", advice.Recommendation)
			if advice.Fallback && advice.Error != "" {
				a.logger.Warn("provider failed, advice computed locally", "error", advice.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&platform, "platform", "", "target platform (default Web)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

// withTimeout bounds provider calls by the configured timeout.
func (a *app) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := config.DefaultTimeout
	if a.cfg != nil && a.cfg.Timeout > 0 {
		timeout = a.cfg.Timeout
	}
	return context.WithTimeout(ctx, timeout)
}

// writeOutput runs fn against path, or stdout when path is empty.
func (a *app) writeOutput(cmd *cobra.Command, path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.logger.Info("wrote file", "path", path)
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

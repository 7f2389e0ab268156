package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/designkit/internal/colour"
	"github.com/jmylchreest/designkit/internal/lab"
)

// parseColourArg accepts "#rrggbb", "rrggbb", "rgb(r, g, b)" and
// "hsl(h, s%, l%)".
func parseColourArg(s string) (colour.RGB, error) {
	s = strings.TrimSpace(s)
	if rgb, ok := colour.ParseHex(s); ok {
		return rgb, nil
	}

	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")"):
		parts, err := splitFunctional(lower[4:len(lower)-1], 3)
		if err != nil {
			return colour.RGB{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		var ch [3]int
		for i, p := range parts {
			v, err := strconv.Atoi(p)
			if err != nil || v < 0 || v > 255 {
				return colour.RGB{}, fmt.Errorf("invalid colour %q: channel %q out of range", s, p)
			}
			ch[i] = v
		}
		return colour.RGB{R: uint8(ch[0]), G: uint8(ch[1]), B: uint8(ch[2])}, nil

	case strings.HasPrefix(lower, "hsl(") && strings.HasSuffix(lower, ")"):
		parts, err := splitFunctional(lower[4:len(lower)-1], 3)
		if err != nil {
			return colour.RGB{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		h, err1 := strconv.ParseFloat(strings.TrimSuffix(parts[0], "deg"), 64)
		sat, err2 := strconv.ParseFloat(strings.TrimSuffix(parts[1], "%"), 64)
		light, err3 := strconv.ParseFloat(strings.TrimSuffix(parts[2], "%"), 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return colour.RGB{}, fmt.Errorf("invalid colour %q", s)
		}
		return colour.HSLToRGB(h, sat/100, light/100), nil
	}

	return colour.RGB{}, fmt.Errorf("invalid colour %q (expected #rrggbb, rgb() or hsl())", s)
}

func splitFunctional(body string, n int) ([]string, error) {
	parts := strings.Split(body, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

// hexArgs parses every argument to its canonical hex form.
func hexArgs(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		rgb, err := parseColourArg(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, rgb.Hex())
	}
	return out, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) newConvertCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "convert <colour>...",
		Short: "Show a colour as hex, RGB and HSL",
		Example: `  designkit convert '#6666ff'
  designkit convert 'rgb(255, 0, 0)' 'hsl(210, 50%, 40%)'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			type row struct {
				Input string     `json:"input"`
				Hex   string     `json:"hex"`
				RGB   colour.RGB `json:"rgb"`
				HSL   colour.HSL `json:"hsl"`
			}

			rows := make([]row, 0, len(args))
			for _, arg := range args {
				rgb, err := parseColourArg(arg)
				if err != nil {
					return err
				}
				rows = append(rows, row{Input: arg, Hex: rgb.Hex(), RGB: rgb, HSL: rgb.HSL()})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, rows)
			}

			p := a.newPainter(out)
			table := NewTable([]string{"Input", "Hex", "RGB", "HSL"})
			for _, r := range rows {
				table.AddRow([]string{r.Input, p.labelled(r.Hex), r.RGB.String(), r.HSL.String()})
			}
			fmt.Fprint(out, table.Render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

func (a *app) newContrastCmd() *cobra.Command {
	var (
		asJSON     bool
		lineHeight float64
		minLevel   string
	)

	cmd := &cobra.Command{
		Use:   "contrast <background> <text>",
		Short: "Measure WCAG contrast between a background and a text colour",
		Long: `Measure the WCAG 2.1 contrast ratio of a text colour on a background.

Ratios of 7:1 and above are AAA, 4.5:1 and above are AA, anything lower fails.
The pair is also shown as a reader with deuteranopia would see it.

With --min the command exits non-zero when the pair does not reach the level.`,
		Example: `  designkit contrast '#ffffff' '#767676'
  designkit contrast f5f5f5 333333 --min AAA`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hexes, err := hexArgs(args)
			if err != nil {
				return err
			}
			report := lab.Analyse(hexes[0], hexes[1], lineHeight)

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, report); err != nil {
					return err
				}
			} else {
				printReport(out, a.newPainter(out), report)
			}

			return checkMinLevel(report.Level, minLevel)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	cmd.Flags().Float64Var(&lineHeight, "line-height", lab.DefaultLineHeight, "preview line height")
	cmd.Flags().StringVar(&minLevel, "min", "", "required level (AA or AAA)")
	return cmd
}

func printReport(out io.Writer, p painter, r lab.Report) {
	fmt.Fprintf(out, "Contrast:      %s (%s)\n", r.RatioText, r.Level)
	fmt.Fprintf(out, "Normal:        %s  %s on %s\n",
		p.sample(r.Normal.Background, r.Normal.Text, "Aa"), r.Normal.Text, r.Normal.Background)
	fmt.Fprintf(out, "Deuteranopia:  %s  %s on %s\n",
		p.sample(r.Deuteranopia.Background, r.Deuteranopia.Text, "Aa"), r.Deuteranopia.Text, r.Deuteranopia.Background)
	fmt.Fprintf(out, "Suggested text: %s\n", p.labelled(colour.ContrastingTextColour(r.Background)))
}

// checkMinLevel fails when level is below the named minimum.
func checkMinLevel(level colour.Level, minimum string) error {
	if minimum == "" {
		return nil
	}
	rank := map[colour.Level]int{colour.LevelFail: 0, colour.LevelAA: 1, colour.LevelAAA: 2}
	want, ok := rank[colour.Level(strings.ToUpper(minimum))]
	if !ok || want == 0 {
		return fmt.Errorf("invalid --min %q (must be AA or AAA)", minimum)
	}
	if rank[level] < want {
		return fmt.Errorf("contrast level %s is below %s", level, strings.ToUpper(minimum))
	}
	return nil
}

// newAdjustCmd builds lighten and darken, which share a shape.
func (a *app) newAdjustCmd(use, short string, fn func(string, float64) string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <colour> <percent>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hexes, err := hexArgs(args[:1])
			if err != nil {
				return err
			}
			percent, err := strconv.ParseFloat(strings.TrimSuffix(args[1], "%"), 64)
			if err != nil {
				return fmt.Errorf("invalid percent %q: %w", args[1], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, a.newPainter(out).labelled(fn(hexes[0], percent)))
			return nil
		},
	}
}

func (a *app) newLightenCmd() *cobra.Command {
	cmd := a.newAdjustCmd("lighten", "Move a colour towards white by a percentage", colour.Lighten)
	cmd.Example = "  designkit lighten '#6666ff' 20"
	return cmd
}

func (a *app) newDarkenCmd() *cobra.Command {
	cmd := a.newAdjustCmd("darken", "Scale a colour towards black by a percentage", colour.Darken)
	cmd.Example = "  designkit darken '#6666ff' 20"
	return cmd
}

// newMapCmd builds commands that map each colour argument to another colour.
func (a *app) newMapCmd(use, short, header string, fn func(string) string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <colour>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hexes, err := hexArgs(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			p := a.newPainter(out)
			table := NewTable([]string{"Colour", header})
			for _, hex := range hexes {
				table.AddRow([]string{p.labelled(hex), p.labelled(fn(hex))})
			}
			fmt.Fprint(out, table.Render())
			return nil
		},
	}
}

func (a *app) newComplementCmd() *cobra.Command {
	return a.newMapCmd("complement", "Rotate colours 180 degrees around the hue wheel", "Complement", colour.Complementary)
}

func (a *app) newSimulateCmd() *cobra.Command {
	return a.newMapCmd("simulate", "Show colours as seen with deuteranopia", "Deuteranopia", colour.SimulateDeuteranopia)
}

func (a *app) newShadesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "shades <colour>...",
		Short: "Show light and dark shades of colours",
		Long: fmt.Sprintf(`Show each colour with a variant lightened and darkened by %d%%,
and the text colour that reads best on it.`, colour.DefaultShadeStep),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hexes, err := hexArgs(args)
			if err != nil {
				return err
			}
			shades := make([]colour.Shade, 0, len(hexes))
			for _, hex := range hexes {
				shades = append(shades, colour.Shades(hex))
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, shades)
			}

			p := a.newPainter(out)
			table := NewTable([]string{"Light", "Main", "Dark", "Text"})
			for _, s := range shades {
				table.AddRow([]string{
					p.labelled(s.Light), p.labelled(s.Main), p.labelled(s.Dark),
					colour.ContrastingTextColour(s.Main),
				})
			}
			fmt.Fprint(out, table.Render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

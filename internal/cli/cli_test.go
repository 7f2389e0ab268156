package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/designkit/internal/colour"
	"github.com/jmylchreest/designkit/internal/design"
	"github.com/jmylchreest/designkit/internal/lab"
)

// isolate points the config and home directories at temp dirs and clears
// the environment the CLI reads.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, name := range []string{"OPENAI_API_KEY", "GOOGLE_API_KEY", "DESIGNKIT_PROVIDER", "DESIGNKIT_TEMPLATE_DIR", "NO_COLOR"} {
		t.Setenv(name, "")
	}
}

// run executes the root command offline and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	isolate(t)
	return execute(t, stdin, args...)
}

// execute runs the root command in the current environment.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--provider", "none"}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, "", args...)
	if err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestParseColourArg(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#6666FF", "#6666ff", false},
		{"6666ff", "#6666ff", false},
		{"rgb(255, 0, 0)", "#ff0000", false},
		{"RGB(0,128,255)", "#0080ff", false},
		{"hsl(120, 100%, 50%)", "#00ff00", false},
		{"hsl(0deg, 0%, 100%)", "#ffffff", false},
		{"#fff", "", true},
		{"rgb(256, 0, 0)", "", true},
		{"rgb(1, 2)", "", true},
		{"hsl(a, b, c)", "", true},
		{"blue", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			rgb, err := parseColourArg(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseColourArg(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && rgb.Hex() != tt.want {
				t.Errorf("parseColourArg(%q) = %s, want %s", tt.in, rgb.Hex(), tt.want)
			}
		})
	}
}

func TestConvertCmd(t *testing.T) {
	out := mustRun(t, "convert", "rgb(255, 0, 0)", "#6666FF")
	for _, want := range []string{"#ff0000", "#6666ff", "rgb(255, 0, 0)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out = mustRun(t, "convert", "--json", "hsl(120, 100%, 50%)")
	var rows []struct {
		Hex string     `json:"hex"`
		RGB colour.RGB `json:"rgb"`
	}
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(rows) != 1 || rows[0].Hex != "#00ff00" || rows[0].RGB.G != 255 {
		t.Errorf("rows = %+v", rows)
	}

	if _, err := run(t, "", "convert", "blue"); err == nil {
		t.Error("expected error for invalid colour")
	}
}

func TestContrastCmd(t *testing.T) {
	out := mustRun(t, "contrast", "#ffffff", "#000000")
	if !strings.Contains(out, "21.00 : 1 (AAA)") {
		t.Errorf("output:\n%s", out)
	}
	if !strings.Contains(out, "Deuteranopia:") {
		t.Errorf("missing deuteranopia line:\n%s", out)
	}

	out = mustRun(t, "contrast", "--json", "--line-height", "1.4", "ffffff", "777777")
	var report lab.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if report.Level != colour.LevelFail || report.Normal.LineHeight != 1.4 {
		t.Errorf("report = %+v", report)
	}

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"meets AAA", []string{"contrast", "#ffffff", "#000000", "--min", "AAA"}, false},
		{"meets aa lowercase", []string{"contrast", "#ffffff", "#595959", "--min", "aa"}, false},
		{"below AA", []string{"contrast", "#ffffff", "#777777", "--min", "AA"}, true},
		{"invalid level", []string{"contrast", "#ffffff", "#000000", "--min", "Fail"}, true},
		{"one colour", []string{"contrast", "#ffffff"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAdjustCmds(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"lighten", "#000000", "50"}, "#808080"},
		{[]string{"lighten", "#6666ff", "0%"}, "#6666ff"},
		{[]string{"darken", "#ffffff", "50"}, "#808080"},
		{[]string{"darken", "#6666ff", "100"}, "#000000"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			if got := strings.TrimSpace(mustRun(t, tt.args...)); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := run(t, "", "lighten", "#000000", "lots"); err == nil {
		t.Error("expected error for invalid percent")
	}
}

func TestMapCmds(t *testing.T) {
	out := mustRun(t, "complement", "#ff0000")
	if !strings.Contains(out, "#00ffff") {
		t.Errorf("complement output:\n%s", out)
	}

	out = mustRun(t, "simulate", "#808080")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if got := strings.Fields(lines[len(lines)-1]); len(got) != 2 || got[0] != "#808080" || got[1] != "#808080" {
		t.Errorf("simulate grey row = %q", got)
	}
}

func TestShadesCmd(t *testing.T) {
	out := mustRun(t, "shades", "--json", "#6666ff")
	var shades []colour.Shade
	if err := json.Unmarshal([]byte(out), &shades); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	want := colour.Shades("#6666ff")
	if len(shades) != 1 || shades[0] != want {
		t.Errorf("shades = %+v, want %+v", shades, want)
	}
}

func TestKeywordsCmd(t *testing.T) {
	out := mustRun(t, "keywords", "--soft", "20", "--static", "20")
	if !strings.Contains(out, "group2") || !strings.Contains(out, "calm") {
		t.Errorf("soft/static output:\n%s", out)
	}
	if strings.Contains(out, "group4") {
		t.Errorf("unexpected group in output:\n%s", out)
	}

	out = mustRun(t, "keywords", "--all")
	for _, want := range []string{"group1", "group4", "Platforms:"} {
		if !strings.Contains(out, want) {
			t.Errorf("--all output missing %q", want)
		}
	}
}

func TestGenerateCmdJSON(t *testing.T) {
	out := mustRun(t, "generate", "--service", "Shop", "--platform", "Web", "--keyword", "bold",
		"--primary", "#E63946", "--json")

	var sys design.System
	if err := json.Unmarshal([]byte(out), &sys); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if !sys.Fallback {
		t.Error("expected a fallback system without a provider")
	}
	if sys.ColorSystem.Primary != "#e63946" {
		t.Errorf("Primary = %s", sys.ColorSystem.Primary)
	}
	if sys.Metadata == nil || sys.Metadata.Keyword != "bold" || sys.Metadata.Platform != "Web" {
		t.Errorf("Metadata = %+v", sys.Metadata)
	}
}

func TestGenerateCmdLabColours(t *testing.T) {
	out := mustRun(t, "generate", "--service", "Blog", "--platform", "Web", "--keyword", "clean",
		"--background", "#000000", "--text", "#FFFFFF", "--json")

	var sys design.System
	if err := json.Unmarshal([]byte(out), &sys); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if sys.ColorSystem.Background != "#000000" || sys.ColorSystem.Text != "#ffffff" {
		t.Errorf("final colours = %+v", sys.ColorSystem)
	}
}

func TestGenerateCmdText(t *testing.T) {
	out := mustRun(t, "generate", "--service", "Blog", "--platform", "Web", "--keyword", "clean")
	for _, want := range []string{"Blog / Web / clean", "primary", "Fonts:", "Contrast:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateCmdExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.css")
	mustRun(t, "generate", "--service", "Shop", "--platform", "Web", "--keyword", "bold",
		"--primary", "#e63946", "--export", "css", "-o", path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), ":root {\n  --primary-color: #e63946;\n") {
		t.Errorf("css =\n%s", data)
	}
}

func TestGenerateCmdErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing keyword", []string{"generate", "--service", "Shop", "--platform", "Web"}},
		{"blank service", []string{"generate", "--service", " ", "--platform", "Web", "--keyword", "bold"}},
		{"invalid primary", []string{"generate", "--service", "Shop", "--platform", "Web", "--keyword", "bold", "--primary", "red"}},
		{"unknown format", []string{"generate", "--service", "Shop", "--platform", "Web", "--keyword", "bold", "--export", "pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, "", tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRecommendCmd(t *testing.T) {
	out := mustRun(t, "recommend", "--json", "#ffffff", "#777777")

	var advice design.Advice
	if err := json.Unmarshal([]byte(out), &advice); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if advice.ContrastRatio != "4.48:1" || advice.WCAGLevel != "Fail" {
		t.Errorf("advice = %+v", advice)
	}
	if !colour.IsHex(advice.SuggestedTextColor) {
		t.Errorf("SuggestedTextColor = %q", advice.SuggestedTextColor)
	}
}

func TestExportCmd(t *testing.T) {
	out := mustRun(t, "export", "--primary", "#112233", "--format", "scss")
	if !strings.HasPrefix(out, "$primary-color: #112233;\n$secondary-color: #ff6b6b;") {
		t.Errorf("scss =\n%s", out)
	}

	stdin := `{"colorSystem":{"primary":"#6666ff","secondary":"#ff6b6b","background":"#f8f9fa","text":"#333333"},"designRationale":"x"}`
	out, err := run(t, stdin, "export", "--input", "-", "--format", "js")
	if err != nil {
		t.Fatal(err)
	}
	want := "export const colors = {\n  primary: '#6666ff',\n  secondary: '#ff6b6b',\n  background: '#f8f9fa',\n  text: '#333333'\n};\n"
	if out != want {
		t.Errorf("js =\n%s\nwant\n%s", out, want)
	}

	out, err = run(t, `{"primary":"#000000","text":"nope"}`, "export", "-i", "-", "-f", "json")
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		ColorSystem design.ColorSystem `json:"colorSystem"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.ColorSystem.Primary != "#000000" || doc.ColorSystem.Text != design.DefaultText {
		t.Errorf("colorSystem = %+v", doc.ColorSystem)
	}

	if _, err := run(t, "{", "export", "--input", "-"); err == nil {
		t.Error("expected error for malformed input")
	}
	if _, err := run(t, "", "export", "--format", "pdf"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestExportCmdTemplates(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, "export", "--dump-templates", "--template-dir", dir)
	for _, name := range []string{"css.tmpl", "scss.tmpl", "js.tmpl", "json.tmpl"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not dumped: %v", name, err)
		}
		if !strings.Contains(out, name) {
			t.Errorf("output does not list %s", name)
		}
	}

	if _, err := run(t, "", "export", "--dump-templates", "--template-dir", dir); err == nil {
		t.Error("expected error when templates exist without --force")
	}
	mustRun(t, "export", "--dump-templates", "--force", "--template-dir", dir)

	if err := os.WriteFile(filepath.Join(dir, "css.tmpl"), []byte(`{{ hexNoHash .ColorSystem.Primary }}`), 0o644); err != nil {
		t.Fatal(err)
	}
	out = mustRun(t, "export", "--template-dir", dir, "--primary", "#abcdef")
	if out != "abcdef" {
		t.Errorf("custom template output = %q", out)
	}
}

func TestExportCmdDefaultTemplateDir(t *testing.T) {
	isolate(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, "designkit", "templates")

	if _, err := execute(t, "", "export", "--dump-templates"); err != nil {
		t.Fatalf("dump templates: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "css.tmpl"), []byte(`CUSTOM {{ .ColorSystem.Primary }}`), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "export", "--primary", "#abcdef")
	if err != nil {
		t.Fatal(err)
	}
	if out != "CUSTOM #abcdef" {
		t.Errorf("export with dumped template = %q, want the edited template", out)
	}
}

func TestVersionCmd(t *testing.T) {
	if out := mustRun(t, "version"); !strings.HasPrefix(out, "designkit version ") {
		t.Errorf("version = %q", out)
	}
}

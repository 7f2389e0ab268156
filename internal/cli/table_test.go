package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTableAddRowFitsHeaders(t *testing.T) {
	table := NewTable([]string{"Role", "Main"})

	table.AddRow([]string{"primary"})
	table.AddRow([]string{"secondary", "#ff6b6b", "extra"})

	if len(table.rows[0]) != 2 || table.rows[0][1] != "" {
		t.Errorf("short row not padded: %q", table.rows[0])
	}
	if len(table.rows[1]) != 2 {
		t.Errorf("long row not truncated: %q", table.rows[1])
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"Role", "Main", "Dark"})
	table.AddRow([]string{"primary", "#6666ff", "#5252cc"})
	table.AddRow([]string{"text", "#333333", "#292929"})

	want := "" +
		"Role     Main     Dark\n" +
		"-------  -------  -------\n" +
		"primary  #6666ff  #5252cc\n" +
		"text     #333333  #292929\n"
	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}

	got := NewTable([]string{"Group", "Keywords"}).Render()
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "-----") {
		t.Errorf("headers only: %q", got)
	}
}

func TestTableWrapsColumn(t *testing.T) {
	table := NewTable([]string{"Group", "Keywords"})
	table.SetColumnMaxWidth(1, 13)
	table.AddRow([]string{"group1", "romantic, sweet, gentle"})

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, separator and 2 wrapped lines, got %q", lines)
	}
	if !strings.HasPrefix(lines[2], "group1") || !strings.Contains(lines[3], "gentle") {
		t.Errorf("wrapped lines = %q", lines[2:])
	}
	if strings.HasPrefix(lines[3], "group1") {
		t.Error("continuation line repeats the first column")
	}
}

func TestTableMeasuresStyledCells(t *testing.T) {
	r := lipgloss.NewRenderer(&strings.Builder{})
	styled := r.NewStyle().Bold(true).Render("#6666ff")

	table := NewTable([]string{"Hex", "Name"})
	table.AddRow([]string{styled, "primary"})

	lines := strings.Split(table.Render(), "\n")
	if got, want := lipgloss.Width(lines[2]), lipgloss.Width(lines[1]); got != want {
		t.Errorf("styled row width = %d, separator width = %d", got, want)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"#fff", 7, "#fff   "},
		{"#ffffff", 7, "#ffffff"},
		{"#ffffff", 3, "#ffffff"},
		{"", 2, "  "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.width); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "calm, soft", 20, []string{"calm, soft"}},
		{"words", "calm soft quiet", 9, []string{"calm soft", "quiet"}},
		{"long word", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"no limit", "anything at all", 0, []string{"anything at all"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.text, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("wrapText() = %q, want %q", got, tt.want)
			}
		})
	}
}

package session

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/jmylchreest/designkit/internal/colour"
	"github.com/jmylchreest/designkit/internal/design"
	"github.com/jmylchreest/designkit/internal/knowledge"
)

type stubProvider struct {
	sys *design.System
	err error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) GenerateGuide(context.Context, design.GuideRequest, string) (*design.System, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.sys.Clone(), nil
}

func (p *stubProvider) RecommendColours(context.Context, design.AdviceRequest, string) (*design.Advice, error) {
	return nil, errors.New("not implemented")
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s := New(nil, WithClock(func() time.Time { return fixedNow }))
	if err := s.SelectService("Meditation app"); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectPlatform("iOS"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SelectKeyword("calm"); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSelectionsValidate(t *testing.T) {
	s := New(nil)

	if err := s.SelectService("  "); !errors.Is(err, design.ErrMissingInput) {
		t.Errorf("SelectService(blank) error = %v", err)
	}
	if err := s.SelectPlatform(""); !errors.Is(err, design.ErrMissingInput) {
		t.Errorf("SelectPlatform(empty) error = %v", err)
	}
	if _, err := s.SelectKeyword(""); !errors.Is(err, design.ErrMissingInput) {
		t.Errorf("SelectKeyword(empty) error = %v", err)
	}
	if err := s.SelectColour("#xyz"); !errors.Is(err, design.ErrInvalidColour) {
		t.Errorf("SelectColour(invalid) error = %v", err)
	}
	if err := s.SelectColour("ABCDEF"); err != nil || s.PrimaryColour != "#abcdef" {
		t.Errorf("SelectColour(ABCDEF) = %v, primary %q", err, s.PrimaryColour)
	}
	if err := s.SelectColour(""); err != nil || s.PrimaryColour != "" {
		t.Errorf("SelectColour(empty) should clear, got %v %q", err, s.PrimaryColour)
	}
}

func TestSetMood(t *testing.T) {
	s := New(nil)
	kb := knowledge.Default()

	tests := []struct {
		name         string
		soft, static int
		group        string
	}{
		{"soft static", 10, 10, knowledge.GroupSoftStatic},
		{"soft dynamic", 10, 90, knowledge.GroupSoftDynamic},
		{"hard static", 90, 10, knowledge.GroupHardStatic},
		{"hard dynamic", 50, 50, knowledge.GroupHardDynamic},
		{"clamped", -20, 400, knowledge.GroupSoftDynamic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.SetMood(tt.soft, tt.static)
			want := kb.IRIColours[tt.group].Keywords
			if !reflect.DeepEqual(got, want) {
				t.Errorf("SetMood(%d, %d) = %v, want %v", tt.soft, tt.static, got, want)
			}
		})
	}

	if s.Mood != (Mood{Soft: 0, Static: 100}) {
		t.Errorf("Mood not clamped: %+v", s.Mood)
	}
}

func TestSetMoodClearsStaleKeyword(t *testing.T) {
	s := New(nil)
	s.SetMood(10, 10)
	if _, err := s.SelectKeyword("calm"); err != nil {
		t.Fatal(err)
	}

	s.SetMood(20, 30)
	if s.Keyword != "calm" {
		t.Errorf("keyword in same quadrant should survive, got %q", s.Keyword)
	}

	s.SetMood(90, 90)
	if s.Keyword != "" {
		t.Errorf("keyword outside quadrant should be cleared, got %q", s.Keyword)
	}
}

func TestSelectKeywordColours(t *testing.T) {
	s := New(nil)

	colours, err := s.SelectKeyword("modern")
	if err != nil {
		t.Fatal(err)
	}
	if len(colours) == 0 || colours[0] != "#6666ff" {
		t.Errorf("key colours = %v", colours)
	}

	colours, _ = s.SelectKeyword("unheard-of")
	if !reflect.DeepEqual(colours, knowledge.FallbackKeyColours) {
		t.Errorf("unknown keyword colours = %v, want fallback", colours)
	}
}

func TestStepProgression(t *testing.T) {
	s := New(nil)
	if s.Step() != StepService {
		t.Fatalf("Step() = %s", s.Step())
	}
	s.SelectService("Shop")
	if s.Step() != StepPlatform {
		t.Fatalf("Step() = %s", s.Step())
	}
	s.SelectPlatform("Web")
	if s.Step() != StepKeyword {
		t.Fatalf("Step() = %s", s.Step())
	}
	s.SelectKeyword("bold")
	if s.Step() != StepGenerate {
		t.Fatalf("Step() = %s", s.Step())
	}
	if _, err := s.Generate(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if s.Step() != StepLab {
		t.Fatalf("Step() = %s", s.Step())
	}
	if _, err := s.Finalize(); err != nil {
		t.Fatal(err)
	}
	if s.Step() != StepReport {
		t.Fatalf("Step() = %s", s.Step())
	}
	if StepReport.String() != "report" || Step(99).String() != "unknown" {
		t.Error("unexpected step names")
	}
}

func TestGenerateRequiresSelections(t *testing.T) {
	s := New(nil)
	if _, err := s.Generate(context.Background(), nil); !errors.Is(err, design.ErrMissingInput) {
		t.Errorf("Generate() error = %v, want ErrMissingInput", err)
	}
	if s.Draft() != nil {
		t.Error("no draft should be stored on error")
	}
}

func TestGenerateLocalFallback(t *testing.T) {
	s := newTestSession(t)
	if err := s.SelectColour("#ff0000"); err != nil {
		t.Fatal(err)
	}

	sys, err := s.Generate(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !sys.Fallback {
		t.Error("local draft should be marked as fallback")
	}
	if sys.ColorSystem.Secondary != colour.Complementary("#ff0000") {
		t.Errorf("Secondary = %s, want complement of primary", sys.ColorSystem.Secondary)
	}
}

func TestGenerateWithProvider(t *testing.T) {
	s := newTestSession(t)
	provider := &stubProvider{sys: &design.System{
		ColorSystem: design.ColorSystem{Primary: "#A8C5A0", Secondary: "#f2e8cf", Background: "#fafafa", Text: "#222222"},
	}}
	gen := design.NewGenerator(provider, design.WithClock(func() time.Time { return fixedNow }))

	sys, err := s.Generate(context.Background(), gen)
	if err != nil {
		t.Fatal(err)
	}
	if sys.Fallback {
		t.Errorf("unexpected fallback: %s", sys.Error)
	}
	if sys.ColorSystem.Primary != "#a8c5a0" {
		t.Errorf("Primary = %s", sys.ColorSystem.Primary)
	}
	if sys.Typography.LineHeight != "1.4" {
		t.Errorf("typography should come from the iOS guideline, got %+v", sys.Typography)
	}

	// The returned value is a copy.
	sys.ColorSystem.Primary = "#000000"
	if s.Draft().ColorSystem.Primary != "#a8c5a0" {
		t.Error("mutating the returned system changed the draft")
	}
}

func TestGenerateProviderFailure(t *testing.T) {
	s := newTestSession(t)
	gen := design.NewGenerator(&stubProvider{err: errors.New("boom")})

	sys, err := s.Generate(context.Background(), gen)
	if err != nil {
		t.Fatal(err)
	}
	if !sys.Fallback || sys.Error != "boom" {
		t.Errorf("expected fallback with error, got fallback=%v error=%q", sys.Fallback, sys.Error)
	}
}

func TestLabWithoutDraft(t *testing.T) {
	s := New(nil)

	if _, err := s.LoadDraftToLab(); !errors.Is(err, ErrNoDraft) {
		t.Errorf("LoadDraftToLab() error = %v, want ErrNoDraft", err)
	}
	if _, err := s.Finalize(); !errors.Is(err, ErrNoDraft) {
		t.Errorf("Finalize() error = %v, want ErrNoDraft", err)
	}

	r := s.Lab()
	if r.Background != "#f5f5f5" || r.Text != "#333333" {
		t.Errorf("default lab colours = %s / %s", r.Background, r.Text)
	}
}

func TestLoadDraftToLab(t *testing.T) {
	s := newTestSession(t)
	provider := &stubProvider{sys: &design.System{
		ColorSystem: design.ColorSystem{Primary: "#6666ff", Secondary: "#ff6b6b", Background: "#ffffff", Text: "#000000"},
	}}
	if _, err := s.Generate(context.Background(), design.NewGenerator(provider)); err != nil {
		t.Fatal(err)
	}

	r, err := s.LoadDraftToLab()
	if err != nil {
		t.Fatal(err)
	}
	if r.Background != "#ffffff" || r.Text != "#000000" {
		t.Errorf("lab colours = %s / %s", r.Background, r.Text)
	}
	if r.Level != colour.LevelAAA {
		t.Errorf("Level = %s", r.Level)
	}
	if r.Normal.LineHeight != 1.4 {
		t.Errorf("LineHeight = %v, want 1.4 from the draft typography", r.Normal.LineHeight)
	}
}

func TestFinalizeAppliesLabColours(t *testing.T) {
	s := newTestSession(t)
	draft, err := s.Generate(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	r := s.SetLabColours("#FFFFFF", "#1A1A1A")
	if r.Level != colour.LevelAAA {
		t.Errorf("Level = %s", r.Level)
	}

	final, err := s.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if final.ColorSystem.Background != "#ffffff" || final.ColorSystem.Text != "#1a1a1a" {
		t.Errorf("final colours = %+v", final.ColorSystem)
	}
	if final.ColorSystem.Primary != draft.ColorSystem.Primary {
		t.Errorf("primary changed: %s != %s", final.ColorSystem.Primary, draft.ColorSystem.Primary)
	}
	if s.Draft().ColorSystem.Background != draft.ColorSystem.Background {
		t.Error("Finalize modified the draft")
	}
	if s.Final().ColorSystem.Text != "#1a1a1a" {
		t.Error("Final() does not return the finalised system")
	}
}

func TestFinalizeKeepsDraftForMalformedLab(t *testing.T) {
	s := newTestSession(t)
	draft, _ := s.Generate(context.Background(), nil)

	r := s.SetLabColours("not-a-colour", "#000000")
	if r.Level != colour.LevelFail {
		t.Errorf("Level = %s, want Fail", r.Level)
	}

	final, err := s.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if final.ColorSystem.Background != draft.ColorSystem.Background {
		t.Errorf("Background = %s, want draft %s", final.ColorSystem.Background, draft.ColorSystem.Background)
	}
	if final.ColorSystem.Text != "#000000" {
		t.Errorf("Text = %s", final.ColorSystem.Text)
	}
}

func TestRegenerateDiscardsFinal(t *testing.T) {
	s := newTestSession(t)
	s.Generate(context.Background(), nil)
	s.Finalize()

	s.Generate(context.Background(), nil)
	if s.Final() != nil {
		t.Error("a new draft should discard the finalised report")
	}
}

func TestSetLineHeight(t *testing.T) {
	s := New(nil)
	if r := s.SetLineHeight(2); r.Normal.LineHeight != 2 {
		t.Errorf("LineHeight = %v", r.Normal.LineHeight)
	}
	for _, v := range []float64{-1, math.NaN(), math.Inf(1)} {
		if r := s.SetLineHeight(v); r.Normal.LineHeight != 1.6 {
			t.Errorf("SetLineHeight(%v) LineHeight = %v, want default", v, r.Normal.LineHeight)
		}
	}
}

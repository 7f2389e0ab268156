// Package session holds the state of one user's walk through the design
// wizard: service, platform and mood selection, draft generation, colour lab
// adjustments and the final report.
//
// A Session belongs to a single user and is not safe for concurrent use.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/designkit/internal/colour"
	"github.com/jmylchreest/designkit/internal/design"
	"github.com/jmylchreest/designkit/internal/knowledge"
	"github.com/jmylchreest/designkit/internal/lab"
)

// ErrNoDraft is returned when an operation needs a generated draft first.
var ErrNoDraft = errors.New("no design draft has been generated")

// Mood is the position of the two mood sliders, each in [0,100].
type Mood struct {
	Soft   int `json:"soft"`
	Static int `json:"static"`
}

// DefaultMood is the centre of both sliders.
var DefaultMood = Mood{Soft: 50, Static: 50}

// Session is one wizard run.
type Session struct {
	Service       string
	Platform      string
	Mood          Mood
	Keyword       string
	PrimaryColour string

	kb     *knowledge.Base
	logger hclog.Logger
	now    func() time.Time

	draft      *design.System
	labBg      string
	labText    string
	lineHeight float64
	final      *design.System
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l hclog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source used for local fallbacks.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// New starts a session against kb, or the embedded knowledge base when kb is nil.
func New(kb *knowledge.Base, opts ...Option) *Session {
	if kb == nil {
		kb = knowledge.Default()
	}
	s := &Session{
		Mood:       DefaultMood,
		kb:         kb,
		logger:     hclog.NewNullLogger(),
		now:        time.Now,
		labBg:      lab.DefaultBackground,
		labText:    lab.DefaultText,
		lineHeight: lab.DefaultLineHeight,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Knowledge returns the knowledge base the session draws keywords from.
func (s *Session) Knowledge() *knowledge.Base {
	return s.kb
}

// SelectService sets the purpose of the service being designed.
func (s *Session) SelectService(service string) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("%w: service", design.ErrMissingInput)
	}
	s.Service = service
	return nil
}

// SelectPlatform sets the target platform.
func (s *Session) SelectPlatform(platform string) error {
	platform = strings.TrimSpace(platform)
	if platform == "" {
		return fmt.Errorf("%w: platform", design.ErrMissingInput)
	}
	s.Platform = platform
	return nil
}

// SetMood moves the sliders and returns the keywords of the matching mood
// quadrant. Values are clamped to [0,100]. A keyword that no longer belongs to
// the quadrant is cleared.
func (s *Session) SetMood(soft, static int) []string {
	s.Mood = Mood{Soft: clamp(soft), Static: clamp(static)}
	keywords := s.kb.KeywordsForMood(s.Mood.Soft, s.Mood.Static)

	if s.Keyword != "" && !contains(keywords, s.Keyword) {
		s.logger.Debug("keyword outside new mood quadrant, clearing", "keyword", s.Keyword)
		s.Keyword = ""
	}
	return keywords
}

// Keywords returns the keywords for the current mood.
func (s *Session) Keywords() []string {
	return s.kb.KeywordsForMood(s.Mood.Soft, s.Mood.Static)
}

// SelectKeyword sets the mood keyword and returns its suggested key colours.
func (s *Session) SelectKeyword(keyword string) ([]string, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("%w: keyword", design.ErrMissingInput)
	}
	s.Keyword = keyword
	return s.kb.KeyColoursFor(keyword), nil
}

// SelectColour sets the primary colour. An empty value clears it.
func (s *Session) SelectColour(hex string) error {
	if hex == "" {
		s.PrimaryColour = ""
		return nil
	}
	normalised, ok := colour.NormaliseHex(hex)
	if !ok {
		return fmt.Errorf("%w: %q", design.ErrInvalidColour, hex)
	}
	s.PrimaryColour = normalised
	return nil
}

// Request returns the guide request described by the current selections.
func (s *Session) Request() design.GuideRequest {
	return design.GuideRequest{
		Service:       s.Service,
		Platform:      s.Platform,
		Keyword:       s.Keyword,
		PrimaryColour: s.PrimaryColour,
		KnowledgeBase: s.kb,
	}
}

// Generate produces the draft design system. With a nil generator the draft
// is the local fallback built from the chosen primary colour. A new draft
// discards any finalised report.
func (s *Session) Generate(ctx context.Context, gen *design.Generator) (*design.System, error) {
	req := s.Request()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		sys *design.System
		err error
	)
	if gen == nil {
		s.logger.Debug("no generator, using local fallback", "keyword", s.Keyword)
		sys = design.LocalFallback(s.PrimaryColour, s.Keyword, s.now())
	} else {
		sys, err = gen.Guide(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	s.draft = sys
	s.final = nil
	return sys.Clone(), nil
}

// Draft returns a copy of the generated draft, or nil.
func (s *Session) Draft() *design.System {
	return s.draft.Clone()
}

// LoadDraftToLab copies the draft's background and text colours, and its
// line height when parseable, into the lab.
func (s *Session) LoadDraftToLab() (lab.Report, error) {
	if s.draft == nil {
		return lab.Report{}, ErrNoDraft
	}
	s.labBg = s.draft.ColorSystem.Background
	s.labText = s.draft.ColorSystem.Text
	if lh, err := lab.ParseLineHeight(s.draft.Typography.LineHeight); err == nil {
		s.lineHeight = lh
	}
	return s.Lab(), nil
}

// SetLabColours sets the lab colours and returns the new analysis. Malformed
// colours are accepted and analysed as failing.
func (s *Session) SetLabColours(bg, text string) lab.Report {
	s.labBg = bg
	s.labText = text
	return s.Lab()
}

// SetLineHeight sets the lab preview line height. Non-positive or non-finite
// values reset it to the default.
func (s *Session) SetLineHeight(lineHeight float64) lab.Report {
	if !lab.ValidLineHeight(lineHeight) {
		lineHeight = lab.DefaultLineHeight
	}
	s.lineHeight = lineHeight
	return s.Lab()
}

// Lab returns the analysis of the current lab colours.
func (s *Session) Lab() lab.Report {
	return lab.Analyse(s.labBg, s.labText, s.lineHeight)
}

// Finalize returns a copy of the draft with the lab background and text
// applied. Lab colours that are not valid hex leave the draft colour in place.
// The draft itself is not modified.
func (s *Session) Finalize() (*design.System, error) {
	if s.draft == nil {
		return nil, ErrNoDraft
	}

	final := s.draft.Clone()
	if bg, ok := colour.NormaliseHex(s.labBg); ok {
		final.ColorSystem.Background = bg
	} else {
		s.logger.Warn("lab background is not a valid colour, keeping draft", "background", s.labBg)
	}
	if text, ok := colour.NormaliseHex(s.labText); ok {
		final.ColorSystem.Text = text
	} else {
		s.logger.Warn("lab text is not a valid colour, keeping draft", "text", s.labText)
	}

	s.final = final
	return final.Clone(), nil
}

// Final returns a copy of the finalised system, or nil.
func (s *Session) Final() *design.System {
	return s.final.Clone()
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

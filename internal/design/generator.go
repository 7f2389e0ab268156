package design

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/designkit/internal/colour"
	"github.com/jmylchreest/designkit/internal/knowledge"
)

// ErrNoProvider is recorded on fallbacks produced without a provider.
var ErrNoProvider = errors.New("no suggestion provider configured")

// Generator obtains design systems and advice from a SuggestionProvider and
// substitutes the static fallbacks when it fails. There is no retry.
type Generator struct {
	provider  SuggestionProvider
	knowledge *knowledge.Base
	logger    hclog.Logger
	now       func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. The default discards output.
func WithLogger(l hclog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithKnowledge sets the knowledge base. The default is knowledge.Default().
func WithKnowledge(kb *knowledge.Base) Option {
	return func(g *Generator) {
		if kb != nil {
			g.knowledge = kb
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator returns a Generator. provider may be nil, in which case every
// request yields a fallback.
func NewGenerator(provider SuggestionProvider, opts ...Option) *Generator {
	g := &Generator{
		provider: provider,
		logger:   hclog.NewNullLogger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.knowledge == nil {
		g.knowledge = knowledge.Default()
	}
	return g
}

// Knowledge returns the knowledge base in use.
func (g *Generator) Knowledge() *knowledge.Base {
	return g.knowledge
}

// ProviderName returns the provider name, or "none".
func (g *Generator) ProviderName() string {
	if g.provider == nil {
		return "none"
	}
	return g.provider.Name()
}

// Guide validates req and returns a design system. Provider failures are
// absorbed: the result is then Fallback with the error recorded. Only an
// invalid request returns an error.
func (g *Generator) Guide(ctx context.Context, req GuideRequest) (*System, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	kb := g.knowledge
	if req.KnowledgeBase != nil {
		kb = req.KnowledgeBase
	}

	logger := g.logger.With("service", req.Service, "platform", req.Platform, "keyword", req.Keyword)

	if g.provider == nil {
		logger.Debug("no provider configured, using fallback design system")
		return Fallback(req, ErrNoProvider, g.now()), nil
	}

	prompt, err := BuildGuidePrompt(req, kb)
	if err != nil {
		logger.Error("failed to build prompt", "error", err)
		return Fallback(req, err, g.now()), nil
	}

	logger.Debug("requesting design system", "provider", g.provider.Name())
	start := g.now()
	sys, err := g.provider.GenerateGuide(ctx, req, prompt)
	if err != nil {
		logger.Warn("provider failed, using fallback design system", "provider", g.provider.Name(), "error", err)
		return Fallback(req, err, g.now()), nil
	}
	if sys == nil {
		sys = &System{}
	}

	if replaced := Complete(sys, req, kb, g.provider.Name(), g.now()); len(replaced) > 0 {
		logger.Warn("provider returned malformed colours, replaced with defaults", "roles", replaced)
	}
	logger.Debug("design system ready", "elapsed", g.now().Sub(start), "id", sys.Metadata.ID)

	return sys, nil
}

// Advise validates req and returns advice for the colour pair. The measured
// ratio and level always come from the colour package; provider text and
// suggestions are kept when they are usable. Provider failures yield
// FallbackAdvice.
func (g *Generator) Advise(ctx context.Context, req AdviceRequest) (*Advice, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	logger := g.logger.With("background", req.Background, "text", req.Text)
	measured := CheckAdvice(req)

	if g.provider == nil {
		return measured, nil
	}

	prompt, err := BuildAdvicePrompt(req)
	if err != nil {
		logger.Error("failed to build prompt", "error", err)
		return FallbackAdvice(req, err), nil
	}

	advice, err := g.provider.RecommendColours(ctx, req, prompt)
	if err != nil {
		logger.Warn("provider failed, using computed advice", "provider", g.provider.Name(), "error", err)
		return FallbackAdvice(req, err), nil
	}
	if advice == nil {
		return FallbackAdvice(req, errors.New("provider returned no advice")), nil
	}

	if advice.ContrastRatio != measured.ContrastRatio || advice.WCAGLevel != measured.WCAGLevel {
		logger.Debug("provider contrast differs from measured value",
			"provider_ratio", advice.ContrastRatio, "provider_level", advice.WCAGLevel,
			"ratio", measured.ContrastRatio, "level", measured.WCAGLevel)
	}
	advice.ContrastRatio = measured.ContrastRatio
	advice.WCAGLevel = measured.WCAGLevel

	if advice.Recommendation == "" {
		advice.Recommendation = measured.Recommendation
	}
	if hex, ok := colour.NormaliseHex(advice.SuggestedBgColor); ok {
		advice.SuggestedBgColor = hex
	} else {
		advice.SuggestedBgColor = measured.SuggestedBgColor
	}
	if hex, ok := colour.NormaliseHex(advice.SuggestedTextColor); ok {
		advice.SuggestedTextColor = hex
	} else {
		advice.SuggestedTextColor = measured.SuggestedTextColor
	}

	return advice, nil
}

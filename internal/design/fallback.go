package design

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmylchreest/designkit/internal/colour"
	"github.com/jmylchreest/designkit/internal/knowledge"
)

// Static defaults shared by every fallback path.
const (
	DefaultPrimary    = "#6666ff"
	DefaultSecondary  = "#ff6b6b"
	DefaultBackground = "#f8f9fa"
	DefaultText       = colour.DarkText

	DefaultHeadlineFont = "Noto Sans KR"
	DefaultBodyFont     = "Nanum Gothic"
)

// DefaultColorSystem returns the default colours with the given primary, or
// DefaultPrimary when primary is not a valid hex colour.
func DefaultColorSystem(primary string) ColorSystem {
	p, ok := colour.NormaliseHex(primary)
	if !ok {
		p = DefaultPrimary
	}
	return ColorSystem{
		Primary:    p,
		Secondary:  DefaultSecondary,
		Background: DefaultBackground,
		Text:       DefaultText,
	}
}

// DefaultTypography is used when neither the provider nor the platform
// guideline supplies a type scale.
func DefaultTypography() Typography {
	return Typography{BodySize: "16px", HeadlineSize: "32px", LineHeight: "1.6"}
}

func defaultNavigation() []string {
	return []string{"Home", "About", "Services", "Support", "Contact"}
}

// typographyFor returns the platform type scale, or DefaultTypography.
func typographyFor(kb *knowledge.Base, platform string) Typography {
	if kb != nil {
		if g, ok := kb.GuidelineFor(platform); ok && g.TypeScale != nil {
			return Typography{
				BodySize:     g.TypeScale.BodySize,
				HeadlineSize: g.TypeScale.HeadlineSize,
				LineHeight:   g.TypeScale.LineHeight,
			}
		}
	}
	return DefaultTypography()
}

// Complete fills the sections a provider left out, sanitises the colours and
// stamps metadata. It returns the colour roles that had to be replaced.
func Complete(sys *System, req GuideRequest, kb *knowledge.Base, provider string, now time.Time) []string {
	defaults := DefaultColorSystem(req.PrimaryColour)

	var replaced []string
	if sys.ColorSystem.IsZero() {
		sys.ColorSystem = defaults
	} else {
		replaced = sys.ColorSystem.Sanitise(defaults)
	}

	if sys.FontPairing.IsZero() {
		sys.FontPairing = FontPairing{
			Headline:  DefaultHeadlineFont,
			Body:      DefaultBodyFont,
			Rationale: "Chosen for legibility and to support the brand image.",
		}
	}
	if sys.UXCopy.IsZero() {
		sys.UXCopy = UXCopy{
			Navigation: defaultNavigation(),
			CTA:        "Get started",
			CardTitle:  "Title",
			CardBody:   "Description",
		}
	}
	if sys.DesignRationale == "" {
		sys.DesignRationale = "A design that puts the user experience first."
	}
	if sys.AccessibilityReport == "" {
		sys.AccessibilityReport = "Meets the WCAG 2.1 AA criteria."
	}
	if sys.Typography.IsZero() {
		sys.Typography = typographyFor(kb, req.Platform)
	}

	sys.Metadata = newMetadata(req, provider, now)
	return replaced
}

// Fallback is the static design system returned when the provider fails.
// cause, when non-nil, is recorded in the Error field.
func Fallback(req GuideRequest, cause error, now time.Time) *System {
	sys := &System{
		ColorSystem: DefaultColorSystem(req.PrimaryColour),
		FontPairing: FontPairing{
			Headline: DefaultHeadlineFont,
			Body:     DefaultBodyFont,
			Rationale: "The most widely used Korean web font pairing. " +
				"A bold, clear headline face with a comfortable body face.",
		},
		UXCopy: UXCopy{
			Navigation: defaultNavigation(),
			CTA:        "Get started",
			CardTitle:  "About the service",
			CardBody:   "A service designed around the user experience. Start right away.",
		},
		DesignRationale: fmt.Sprintf("Colours and typography were designed for a %s mood. "+
			"The %s platform guidelines are followed for a consistent experience.", req.Keyword, req.Platform),
		AccessibilityReport: fmt.Sprintf("Meets the WCAG 2.1 AA contrast requirement (%.1f:1 or higher). "+
			"The palette was chosen with colour-vision deficiency in mind.", colour.MinRatioAA),
		Typography: DefaultTypography(),
		Metadata:   newMetadata(req, "", now),
		Fallback:   true,
	}
	if cause != nil {
		sys.Error = cause.Error()
	}
	return sys
}

// LocalFallback is the client-side default built without any provider: the
// secondary colour is the complement of the primary.
func LocalFallback(primary, keyword string, now time.Time) *System {
	cs := DefaultColorSystem(primary)
	cs.Secondary = colour.Complementary(cs.Primary)

	return &System{
		ColorSystem: cs,
		FontPairing: FontPairing{
			Headline:  DefaultHeadlineFont,
			Body:      DefaultBodyFont,
			Rationale: "The most versatile Korean web font pairing.",
		},
		UXCopy: UXCopy{
			Navigation: defaultNavigation(),
			CTA:        "Get started",
			CardTitle:  "Service title",
			CardBody:   "A short description introducing the service.",
		},
		DesignRationale:     fmt.Sprintf("Colours and typography designed for a %s mood.", keyword),
		AccessibilityReport: "Designed to meet the WCAG 2.1 AA criteria.",
		Typography:          DefaultTypography(),
		Metadata: &Metadata{
			ID:          uuid.NewString(),
			Keyword:     keyword,
			GeneratedAt: now.UTC(),
		},
		Fallback: true,
	}
}

// CheckAdvice computes advice for a colour pair without a provider.
// Malformed colours are measured as ratio 1 and earn LevelFail.
func CheckAdvice(req AdviceRequest) *Advice {
	result := colour.ContrastHex(req.Background, req.Text)

	bg, ok := colour.NormaliseHex(req.Background)
	if !ok {
		bg = "#ffffff"
	}
	text, ok := colour.NormaliseHex(req.Text)
	if !ok || result.Level == colour.LevelFail {
		text = colour.ContrastingTextColour(bg)
	}

	var rec string
	switch result.Level {
	case colour.LevelAAA:
		rec = "The combination meets WCAG 2.1 AAA for normal text. No change is needed."
	case colour.LevelAA:
		rec = fmt.Sprintf("The combination meets WCAG 2.1 AA. Increase the contrast to %.0f:1 to reach AAA.", colour.MinRatioAAA)
	default:
		rec = fmt.Sprintf("The combination fails WCAG 2.1 (minimum %.1f:1). Use %s text on this background.", colour.MinRatioAA, text)
	}

	return &Advice{
		ContrastRatio:      colour.FormatRatio(result.Ratio),
		WCAGLevel:          string(result.Level),
		Recommendation:     rec,
		SuggestedBgColor:   bg,
		SuggestedTextColor: text,
	}
}

// FallbackAdvice is CheckAdvice marked as a fallback for a failed provider call.
func FallbackAdvice(req AdviceRequest, cause error) *Advice {
	a := CheckAdvice(req)
	a.Fallback = true
	if cause != nil {
		a.Error = cause.Error()
	}
	return a
}

func newMetadata(req GuideRequest, provider string, now time.Time) *Metadata {
	return &Metadata{
		ID:          uuid.NewString(),
		Service:     req.Service,
		Platform:    req.Platform,
		Keyword:     req.Keyword,
		Provider:    provider,
		GeneratedAt: now.UTC(),
	}
}

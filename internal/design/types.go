// Package design defines the design-system payload produced for a service,
// platform and mood keyword, the capability interface used to obtain one from
// an AI provider, and the static fallbacks used when that capability fails.
package design

import (
	"errors"
	"fmt"
	"time"

	"github.com/jmylchreest/designkit/internal/colour"
	"github.com/jmylchreest/designkit/internal/knowledge"
)

var (
	// ErrMissingInput is returned when a request lacks a required field.
	ErrMissingInput = errors.New("missing required input")

	// ErrInvalidColour is returned when a request carries a malformed hex colour.
	ErrInvalidColour = errors.New("invalid hex colour")
)

// Colour roles of a ColorSystem.
const (
	RolePrimary    = "primary"
	RoleSecondary  = "secondary"
	RoleBackground = "background"
	RoleText       = "text"
)

// Roles lists the colour roles in display order.
var Roles = []string{RolePrimary, RoleSecondary, RoleBackground, RoleText}

// ColorSystem is the four-colour system of a design.
type ColorSystem struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// Get returns the colour for a role.
func (c ColorSystem) Get(role string) (string, bool) {
	switch role {
	case RolePrimary:
		return c.Primary, true
	case RoleSecondary:
		return c.Secondary, true
	case RoleBackground:
		return c.Background, true
	case RoleText:
		return c.Text, true
	default:
		return "", false
	}
}

// IsZero reports whether no colour is set.
func (c ColorSystem) IsZero() bool {
	return c == ColorSystem{}
}

// Sanitise normalises every colour to lowercase "#rrggbb" and replaces
// malformed ones with the matching colour from defaults. It returns the roles
// that were replaced.
func (c *ColorSystem) Sanitise(defaults ColorSystem) []string {
	var replaced []string
	fix := func(role string, v *string, def string) {
		if hex, ok := colour.NormaliseHex(*v); ok {
			*v = hex
			return
		}
		*v = def
		replaced = append(replaced, role)
	}
	fix(RolePrimary, &c.Primary, defaults.Primary)
	fix(RoleSecondary, &c.Secondary, defaults.Secondary)
	fix(RoleBackground, &c.Background, defaults.Background)
	fix(RoleText, &c.Text, defaults.Text)
	return replaced
}

// FontPairing is a headline/body font combination.
type FontPairing struct {
	Headline  string `json:"headline"`
	Body      string `json:"body"`
	Rationale string `json:"rationale"`
}

// IsZero reports whether no font is set.
func (f FontPairing) IsZero() bool {
	return f.Headline == "" && f.Body == ""
}

// UXCopy is sample interface copy for previews.
type UXCopy struct {
	Navigation []string `json:"navigation"`
	CTA        string   `json:"cta"`
	CardTitle  string   `json:"cardTitle"`
	CardBody   string   `json:"cardBody"`
}

// IsZero reports whether no copy is set.
func (u UXCopy) IsZero() bool {
	return len(u.Navigation) == 0 && u.CTA == "" && u.CardTitle == "" && u.CardBody == ""
}

// Typography is the type scale of a design.
type Typography struct {
	BodySize     string `json:"bodySize"`
	HeadlineSize string `json:"headlineSize"`
	LineHeight   string `json:"lineHeight"`
}

// IsZero reports whether no size is set.
func (t Typography) IsZero() bool {
	return t == Typography{}
}

// Metadata describes how a System was produced.
type Metadata struct {
	ID          string    `json:"id"`
	Service     string    `json:"service"`
	Platform    string    `json:"platform"`
	Keyword     string    `json:"keyword"`
	Provider    string    `json:"provider,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// System is a generated design system.
type System struct {
	ColorSystem         ColorSystem `json:"colorSystem"`
	FontPairing         FontPairing `json:"fontPairing"`
	UXCopy              UXCopy      `json:"uxCopy"`
	DesignRationale     string      `json:"designRationale"`
	AccessibilityReport string      `json:"accessibilityReport"`
	Typography          Typography  `json:"typography"`
	Metadata            *Metadata   `json:"metadata,omitempty"`

	// Fallback is set when the system is a static default rather than a
	// provider result; Error then carries the provider failure, if any.
	Fallback bool   `json:"fallback,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Clone returns a deep copy of s.
func (s *System) Clone() *System {
	if s == nil {
		return nil
	}
	c := *s
	c.UXCopy.Navigation = append([]string(nil), s.UXCopy.Navigation...)
	if s.Metadata != nil {
		m := *s.Metadata
		c.Metadata = &m
	}
	return &c
}

// GuideRequest asks for a design system.
type GuideRequest struct {
	Service       string          `json:"service"`
	Platform      string          `json:"platform"`
	Keyword       string          `json:"keyword"`
	PrimaryColour string          `json:"primaryColor,omitempty"`
	KnowledgeBase *knowledge.Base `json:"knowledgeBase,omitempty"`
}

// Validate checks the required fields.
func (r GuideRequest) Validate() error {
	if r.Service == "" || r.Platform == "" || r.Keyword == "" {
		return fmt.Errorf("%w: service, platform and keyword are required", ErrMissingInput)
	}
	if r.PrimaryColour != "" && !colour.IsHex(r.PrimaryColour) {
		return fmt.Errorf("%w: primary colour %q", ErrInvalidColour, r.PrimaryColour)
	}
	return nil
}

// AdviceRequest asks for accessibility advice on a colour pair.
type AdviceRequest struct {
	Background string `json:"bgColor"`
	Text       string `json:"textColor"`
	Platform   string `json:"platform,omitempty"`
}

// Validate checks the required fields.
func (r AdviceRequest) Validate() error {
	if r.Background == "" || r.Text == "" {
		return fmt.Errorf("%w: background and text colours are required", ErrMissingInput)
	}
	return nil
}

// PlatformOrDefault returns the platform, defaulting to "Web".
func (r AdviceRequest) PlatformOrDefault() string {
	if r.Platform == "" {
		return "Web"
	}
	return r.Platform
}

// Advice is accessibility advice for a colour pair.
type Advice struct {
	ContrastRatio      string `json:"contrastRatio"`
	WCAGLevel          string `json:"wcagLevel"`
	Recommendation     string `json:"recommendation"`
	SuggestedBgColor   string `json:"suggestedBgColor"`
	SuggestedTextColor string `json:"suggestedTextColor"`

	Fallback bool   `json:"fallback,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Package knowledge holds the mood knowledge base: IRI colour-image groups
// (keywords and key colours per mood quadrant) and per-platform design
// guidelines.
package knowledge

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jmylchreest/designkit/internal/colour"
	httputil "github.com/jmylchreest/designkit/internal/util/http"
)

//go:embed default.json
var defaultJSON []byte

// Group names used for the four mood quadrants.
const (
	GroupSoftDynamic = "group1"
	GroupSoftStatic  = "group2"
	GroupHardStatic  = "group3"
	GroupHardDynamic = "group4"
)

// MoodThreshold splits each slider into its low and high half.
const MoodThreshold = 50

// FallbackKeyColours is used when a keyword belongs to no group.
var FallbackKeyColours = []string{"#6666ff", "#ff6b6b", "#f0f0f0"}

var (
	// ErrEmpty is returned when a knowledge base has no colour groups.
	ErrEmpty = errors.New("knowledge base has no colour groups")
)

// Group is one IRI colour-image group.
type Group struct {
	Name       string   `json:"name,omitempty"`
	Keywords   []string `json:"keywords"`
	KeyColours []string `json:"key_colors"`
}

// HasKeyword reports whether keyword belongs to the group.
func (g Group) HasKeyword(keyword string) bool {
	for _, k := range g.Keywords {
		if k == keyword {
			return true
		}
	}
	return false
}

// TypeScale is a platform's recommended typography.
type TypeScale struct {
	BodySize     string `json:"bodySize"`
	HeadlineSize string `json:"headlineSize"`
	LineHeight   string `json:"lineHeight"`
}

// Guideline is a platform design guideline. Fields other than those named
// here are kept verbatim in Raw so they can be passed on to prompts.
type Guideline struct {
	Name           string     `json:"name,omitempty"`
	MinTouchTarget string     `json:"minTouchTarget,omitempty"`
	TypeScale      *TypeScale `json:"typeScale,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps the original document.
func (g *Guideline) UnmarshalJSON(data []byte) error {
	type plain Guideline
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*g = Guideline(p)
	g.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns the original document when one was decoded.
func (g Guideline) MarshalJSON() ([]byte, error) {
	if len(g.Raw) > 0 {
		return g.Raw, nil
	}
	type plain Guideline
	return json.Marshal(plain(g))
}

// Base is a loaded knowledge base.
type Base struct {
	IRIColours map[string]Group     `json:"iri_colors"`
	Guidelines map[string]Guideline `json:"guidelines"`
}

// Default returns the embedded knowledge base.
func Default() *Base {
	b, err := Parse(defaultJSON)
	if err != nil {
		panic(fmt.Sprintf("knowledge: embedded base is invalid: %v", err))
	}
	return b
}

// Parse decodes and validates a knowledge base document.
func Parse(data []byte) (*Base, error) {
	var b Base
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Load reads a knowledge base from a file.
func Load(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base: %w", err)
	}
	return Parse(data)
}

// Fetch downloads a knowledge base from a URL.
func Fetch(ctx context.Context, url string) (*Base, error) {
	data, err := httputil.Fetch(ctx, url, httputil.FetchOptions{
		Headers: map[string]string{"Accept": "application/json"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch knowledge base: %w", err)
	}
	return Parse(data)
}

// Open loads a knowledge base from a URL, a file path, or the embedded
// default when source is empty.
func Open(ctx context.Context, source string) (*Base, error) {
	switch {
	case source == "":
		return Default(), nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return Fetch(ctx, source)
	default:
		return Load(source)
	}
}

// Validate checks that the base has groups and that every key colour is a
// six digit hex colour.
func (b *Base) Validate() error {
	if len(b.IRIColours) == 0 {
		return ErrEmpty
	}
	for _, name := range b.GroupNames() {
		for _, c := range b.IRIColours[name].KeyColours {
			if !colour.IsHex(c) {
				return fmt.Errorf("group %s: invalid key colour %q", name, c)
			}
		}
	}
	return nil
}

// GroupNames returns the group names in sorted order.
func (b *Base) GroupNames() []string {
	names := make([]string, 0, len(b.IRIColours))
	for name := range b.IRIColours {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KeywordsForMood maps the soft/hard and static/dynamic slider positions
// (0-100) to the keywords of a mood quadrant. Values outside the range are
// clamped.
func (b *Base) KeywordsForMood(soft, static int) []string {
	return b.IRIColours[QuadrantForMood(soft, static)].Keywords
}

// QuadrantForMood returns the group name for the slider positions.
func QuadrantForMood(soft, static int) string {
	soft = clampSlider(soft)
	static = clampSlider(static)

	switch {
	case soft < MoodThreshold && static < MoodThreshold:
		return GroupSoftStatic
	case soft < MoodThreshold:
		return GroupSoftDynamic
	case static < MoodThreshold:
		return GroupHardStatic
	default:
		return GroupHardDynamic
	}
}

// GroupForKeyword finds the first group, in name order, containing keyword.
func (b *Base) GroupForKeyword(keyword string) (Group, bool) {
	for _, name := range b.GroupNames() {
		g := b.IRIColours[name]
		if g.HasKeyword(keyword) {
			return g, true
		}
	}
	return Group{}, false
}

// KeyColoursFor returns the key colours for keyword, or FallbackKeyColours.
func (b *Base) KeyColoursFor(keyword string) []string {
	if g, ok := b.GroupForKeyword(keyword); ok && len(g.KeyColours) > 0 {
		return g.KeyColours
	}
	return FallbackKeyColours
}

// GuidelineFor looks up a platform guideline, ignoring case.
func (b *Base) GuidelineFor(platform string) (Guideline, bool) {
	g, ok := b.Guidelines[strings.ToLower(platform)]
	return g, ok
}

// Platforms returns the platforms with guidelines in sorted order.
func (b *Base) Platforms() []string {
	names := make([]string, 0, len(b.Guidelines))
	for name := range b.Guidelines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func clampSlider(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

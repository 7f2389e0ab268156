package design

import (
	"context"
	"encoding/json"
	"fmt"
)

// SuggestionProvider is the capability that produces design suggestions,
// typically by calling an AI service. Implementations make a single
// best-effort call and return an explicit error on failure; the caller
// decides which default to use instead.
type SuggestionProvider interface {
	// Name identifies the provider in logs and metadata.
	Name() string

	// GenerateGuide produces a design system. The result may be partial;
	// missing sections are filled in by Complete.
	GenerateGuide(ctx context.Context, req GuideRequest, prompt string) (*System, error)

	// RecommendColours produces accessibility advice for a colour pair.
	RecommendColours(ctx context.Context, req AdviceRequest, prompt string) (*Advice, error)
}

// DecodeSystem decodes a provider's JSON reply into a System.
func DecodeSystem(data []byte) (*System, error) {
	var s System
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode design system: %w", err)
	}
	return &s, nil
}

// DecodeAdvice decodes a provider's JSON reply into Advice.
func DecodeAdvice(data []byte) (*Advice, error) {
	var a Advice
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode advice: %w", err)
	}
	return &a, nil
}

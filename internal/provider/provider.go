// Package provider builds the configured design.SuggestionProvider.
package provider

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/designkit/internal/config"
	"github.com/jmylchreest/designkit/internal/design"
	"github.com/jmylchreest/designkit/internal/provider/googlegenai"
	"github.com/jmylchreest/designkit/internal/provider/openai"
)

// Provider names accepted in configuration.
const (
	NameAuto        = "auto"
	NameNone        = "none"
	NameOpenAI      = "openai"
	NameGoogleGenAI = "google-genai"
)

// ErrUnknownProvider is returned for a provider name that is not supported.
var ErrUnknownProvider = errors.New("unknown provider")

var aliases = map[string]string{
	"":       NameAuto,
	"gemini": NameGoogleGenAI,
	"genai":  NameGoogleGenAI,
	"google": NameGoogleGenAI,
	"off":    NameNone,
}

// Names returns the accepted provider names.
func Names() []string {
	return []string{NameAuto, NameNone, NameOpenAI, NameGoogleGenAI}
}

// New builds the provider named in cfg. It returns a nil provider for "none",
// and for "auto" when no API key is configured; callers then get static
// fallbacks.
func New(cfg *config.Config, logger hclog.Logger) (design.SuggestionProvider, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if alias, ok := aliases[name]; ok {
		name = alias
	}

	if name == NameAuto {
		switch {
		case cfg.OpenAIAPIKey != "" || cfg.OpenAIBaseURL != "":
			name = NameOpenAI
		case cfg.GoogleAPIKey != "":
			name = NameGoogleGenAI
		default:
			logger.Debug("no provider credentials found, using static fallbacks")
			return nil, nil
		}
		logger.Debug("selected provider", "provider", name)
	}

	switch name {
	case NameNone:
		return nil, nil
	case NameOpenAI:
		p, err := openai.New(openai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
			Logger:  logger,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to configure %s provider: %w", name, err)
		}
		return p, nil
	case NameGoogleGenAI:
		p, err := googlegenai.New(googlegenai.Config{
			APIKey:  cfg.GoogleAPIKey,
			Backend: cfg.GenAIBackend,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
			Logger:  logger,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to configure %s provider: %w", name, err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %q (must be one of %s)", ErrUnknownProvider, cfg.Provider, strings.Join(Names(), ", "))
	}
}

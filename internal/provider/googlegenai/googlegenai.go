// Package googlegenai provides a design.SuggestionProvider backed by Google's
// Gen AI SDK (Gemini API or Vertex AI), using JSON response mode.
package googlegenai

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"

	"github.com/jmylchreest/designkit/internal/design"
)

const (
	// defaultModel is the default model used when none is specified.
	defaultModel = "gemini-2.5-flash"

	// defaultBackend is the default backend used when none is specified.
	defaultBackend = BackendGeminiAPI

	// jsonMIMEType forces a JSON object reply.
	jsonMIMEType = "application/json"

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 60 * time.Second
)

// Backend names accepted in Config.
const (
	BackendGeminiAPI = "gemini-api"
	BackendVertexAI  = "vertex-ai"
)

// Config configures the provider.
type Config struct {
	APIKey  string
	Backend string
	Model   string

	// BaseURL overrides the service endpoint, for tests and proxies.
	BaseURL string

	// Timeout bounds each request. Defaults to DefaultTimeout.
	Timeout time.Duration

	Logger hclog.Logger
}

// Provider implements design.SuggestionProvider.
type Provider struct {
	cfg    Config
	logger hclog.Logger
}

var _ design.SuggestionProvider = (*Provider)(nil)

// New creates a provider. For the Gemini API backend the key falls back to
// GOOGLE_API_KEY.
func New(cfg Config) (*Provider, error) {
	if cfg.Backend == "" {
		cfg.Backend = defaultBackend
	}
	if cfg.Backend != BackendGeminiAPI && cfg.Backend != BackendVertexAI {
		return nil, fmt.Errorf("invalid backend %q (must be %s or %s)", cfg.Backend, BackendGeminiAPI, BackendVertexAI)
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Backend == BackendGeminiAPI && cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GOOGLE_API_KEY")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is required\nGet one at: https://aistudio.google.com/api-keys")
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	return &Provider{cfg: cfg, logger: cfg.Logger.Named("google-genai")}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "google-genai"
}

// Model returns the configured model.
func (p *Provider) Model() string {
	return p.cfg.Model
}

// GenerateGuide asks the model for a design system.
func (p *Provider) GenerateGuide(ctx context.Context, _ design.GuideRequest, prompt string) (*design.System, error) {
	text, err := p.generate(ctx, prompt, design.GuideUserMessage, 0.8, 2000)
	if err != nil {
		return nil, err
	}
	return design.DecodeSystem([]byte(text))
}

// RecommendColours asks the model for accessibility advice.
func (p *Provider) RecommendColours(ctx context.Context, _ design.AdviceRequest, prompt string) (*design.Advice, error) {
	text, err := p.generate(ctx, prompt, design.AdviceUserMessage, 0.5, 500)
	if err != nil {
		return nil, err
	}
	return design.DecodeAdvice([]byte(text))
}

// clientSetup creates a client for the configured backend.
func (p *Provider) clientSetup(ctx context.Context) (*genai.Client, error) {
	clientConfig := &genai.ClientConfig{}

	if p.cfg.Backend == BackendVertexAI {
		clientConfig.Backend = genai.BackendVertexAI
	} else {
		clientConfig.Backend = genai.BackendGeminiAPI
		clientConfig.APIKey = p.cfg.APIKey
	}
	if p.cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: p.cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}
	return client, nil
}

func (p *Provider) generate(ctx context.Context, system, user string, temperature float32, maxTokens int32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	client, err := p.clientSetup(ctx)
	if err != nil {
		return "", err
	}

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  jsonMIMEType,
		Temperature:       genai.Ptr(temperature),
		MaxOutputTokens:   maxTokens,
	}

	p.logger.Debug("calling GenerateContent", "backend", p.cfg.Backend, "model", p.cfg.Model)
	response, err := client.Models.GenerateContent(ctx, p.cfg.Model, genai.Text(user), genConfig)
	if err != nil {
		return "", fmt.Errorf("content generation failed: %w", err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates in response")
	}

	text := response.Text()
	if text == "" {
		return "", fmt.Errorf("no text in response (finish reason %q)", response.Candidates[0].FinishReason)
	}
	return text, nil
}

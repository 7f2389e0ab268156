// Package openai provides a design.SuggestionProvider backed by the OpenAI
// chat completions API in JSON mode.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
	openaiapi "github.com/sashabaranov/go-openai"

	"github.com/jmylchreest/designkit/internal/design"
)

const (
	// DefaultModel supports JSON mode.
	DefaultModel = "gpt-3.5-turbo-1106"

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 60 * time.Second

	guideTemperature  = 0.8
	guideMaxTokens    = 2000
	adviceTemperature = 0.5
	adviceMaxTokens   = 500
)

// ErrMissingAPIKey is returned when no API key is configured for the default endpoint.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is required")

// Config configures the provider.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  hclog.Logger
}

// Provider implements design.SuggestionProvider.
type Provider struct {
	client *openaiapi.Client
	model  string
	logger hclog.Logger
}

var _ design.SuggestionProvider = (*Provider)(nil)

// New creates a provider. An API key is required unless a custom BaseURL
// points at a compatible endpoint that does not need one.
func New(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	clientConfig := openaiapi.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Provider{
		client: openaiapi.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: cfg.Logger.Named("openai"),
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "openai"
}

// Model returns the configured model.
func (p *Provider) Model() string {
	return p.model
}

// GenerateGuide asks the model for a design system.
func (p *Provider) GenerateGuide(ctx context.Context, _ design.GuideRequest, prompt string) (*design.System, error) {
	content, err := p.complete(ctx, prompt, design.GuideUserMessage, guideTemperature, guideMaxTokens)
	if err != nil {
		return nil, err
	}
	return design.DecodeSystem([]byte(content))
}

// RecommendColours asks the model for accessibility advice.
func (p *Provider) RecommendColours(ctx context.Context, _ design.AdviceRequest, prompt string) (*design.Advice, error) {
	content, err := p.complete(ctx, prompt, design.AdviceUserMessage, adviceTemperature, adviceMaxTokens)
	if err != nil {
		return nil, err
	}
	return design.DecodeAdvice([]byte(content))
}

func (p *Provider) complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	req := openaiapi.ChatCompletionRequest{
		Model: p.model,
		Messages: []openaiapi.ChatCompletionMessage{
			{Role: openaiapi.ChatMessageRoleSystem, Content: system},
			{Role: openaiapi.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openaiapi.ChatCompletionResponseFormat{
			Type: openaiapi.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	p.logger.Debug("calling chat completions", "model", p.model, "max_tokens", maxTokens)
	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("error calling openai API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai response has no choices")
	}

	choice := resp.Choices[0]
	p.logger.Debug("completion received", "finish_reason", choice.FinishReason,
		"prompt_tokens", resp.Usage.PromptTokens, "completion_tokens", resp.Usage.CompletionTokens)

	if choice.Message.Content == "" {
		return "", fmt.Errorf("openai returned empty content (finish reason %q)", choice.FinishReason)
	}
	return choice.Message.Content, nil
}

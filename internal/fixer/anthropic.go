package fixer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel is used when no rewrite model is configured
const DefaultAnthropicModel = "claude-sonnet-4-5"

// AnthropicProvider generates rewrites through the Anthropic Messages API
type AnthropicProvider struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicProvider creates a provider. The API key is required.
func NewAnthropicProvider(apiKey, model string, maxTokens int) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic_api_key is required when rewrite_provider=anthropic")
	}
	if model == "" {
		model = DefaultAnthropicModel
	}
	if maxTokens <= 0 {
		maxTokens = 3000
	}

	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		// retries are handled by the fixer's backoff
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: client, model: model, maxTokens: int64(maxTokens)}, nil
}

// Model returns the configured model name
func (p *AnthropicProvider) Model() string {
	return p.model
}

// Generate sends one message and returns the text of the reply
func (p *AnthropicProvider) Generate(ctx context.Context, system, prompt string) (string, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   p.maxTokens,
		Temperature: anthropic.Float(0.4),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("anthropic API error (status %d): %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from %s", p.model)
	}
	return sb.String(), nil
}

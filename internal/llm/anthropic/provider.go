// Package anthropic implements llm.Provider on top of the Anthropic Messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/connorhough/qq/internal/llm"
)

const (
	ProviderAnthropic = "anthropic"
	APIKeyEnvVar      = "ANTHROPIC_API_KEY"
)

// Provider implements the llm.Provider interface for the Anthropic API
type Provider struct {
	client anthropic.Client
}

// NewProvider creates a new Anthropic provider. Extra request options are
// applied after the API key, e.g. option.WithBaseURL for a proxy.
func NewProvider(apiKey string, opts ...option.RequestOption) (*Provider, error) {
	if apiKey == "" {
		return nil, llm.ErrAuthenticationFailed(ProviderAnthropic,
			fmt.Errorf("API key is required (run `qq setup` or set %s)", APIKeyEnvVar))
	}

	// Retries are handled by llm.RetryWithBackoff.
	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &Provider{
		client: anthropic.NewClient(reqOpts...),
	}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return ProviderAnthropic
}

// DefaultModel returns the default model for Anthropic
func (p *Provider) DefaultModel() string {
	return DefaultModel()
}

// ValidateModel checks if a model is valid
func (p *Provider) ValidateModel(model string) error {
	return nil // No pre-validation, the API reports unknown models
}

// Generate sends the prompt as a single user message and returns the text of
// the reply.
func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	options := llm.BuildOptions(opts)

	model := options.Model
	if model == "" {
		model = p.DefaultModel()
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(options.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if options.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: options.SystemPrompt}}
	}

	return llm.RetryWithBackoff(ctx, func(ctx context.Context) (string, error) {
		msg, err := p.client.Messages.New(ctx, params)
		if err != nil {
			return "", wrapError(model, err)
		}

		var b strings.Builder
		for _, block := range msg.Content {
			if block.Type == "text" {
				b.WriteString(block.Text)
			}
		}

		output := strings.TrimSpace(b.String())
		if output == "" {
			return "", fmt.Errorf("anthropic API returned empty response")
		}

		return output, nil
	})
}

// wrapError maps Anthropic API errors onto typed llm errors
func wrapError(model string, err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return llm.ErrAuthenticationFailed(ProviderAnthropic, err)
		case http.StatusTooManyRequests:
			return llm.ErrRateLimitExceeded(ProviderAnthropic, err)
		case http.StatusNotFound:
			return llm.ErrModelNotFound(model, ProviderAnthropic, err)
		case http.StatusBadRequest:
			if strings.Contains(apiErr.Error(), "credit balance") {
				return llm.ErrQuotaExceeded(ProviderAnthropic, err)
			}
		}
		return fmt.Errorf("anthropic API error: %w", err)
	}

	if llm.IsNetworkError(err) {
		return llm.ErrNetwork(ProviderAnthropic, err)
	}

	return fmt.Errorf("anthropic API error: %w", err)
}

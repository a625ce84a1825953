// Package cerebras implements llm.Provider for the Cerebras inference API,
// which speaks the OpenAI chat completions protocol.
package cerebras

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/connorhough/qq/internal/llm"
)

const (
	ProviderCerebras = "cerebras"
	APIKeyEnvVar     = "CEREBRAS_API_KEY"
	APIBaseURL       = "https://api.cerebras.ai/v1"

	ModelQwenCoder = "qwen-3-coder-480b"
	ModelLlama     = "llama-3.3-70b"
)

// Provider implements the llm.Provider interface for Cerebras
type Provider struct {
	client *openai.Client
}

// NewProvider creates a new authenticated client for the Cerebras API.
// An empty baseURL selects APIBaseURL.
func NewProvider(apiKey, baseURL string) (*Provider, error) {
	if apiKey == "" {
		return nil, llm.ErrAuthenticationFailed(ProviderCerebras,
			fmt.Errorf("%s environment variable not set", APIKeyEnvVar))
	}
	if baseURL == "" {
		baseURL = APIBaseURL
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &Provider{
		client: openai.NewClientWithConfig(config),
	}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return ProviderCerebras
}

// DefaultModel returns the default model for Cerebras
func (p *Provider) DefaultModel() string {
	return ModelQwenCoder
}

// ValidateModel checks if a model is valid
func (p *Provider) ValidateModel(model string) error {
	return nil
}

// Generate sends a chat completion request and returns the first choice
func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	options := llm.BuildOptions(opts)

	model := options.Model
	if model == "" {
		model = p.DefaultModel()
	}

	var messages []openai.ChatCompletionMessage
	if options.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: options.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	req := openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: options.MaxTokens,
		Messages:  messages,
	}

	return llm.RetryWithBackoff(ctx, func(ctx context.Context) (string, error) {
		resp, err := p.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", wrapError(model, err)
		}

		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("cerebras API returned no choices")
		}

		output := strings.TrimSpace(resp.Choices[0].Message.Content)
		if output == "" {
			return "", fmt.Errorf("cerebras API returned empty response")
		}

		return output, nil
	})
}

func wrapError(model string, err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return llm.ErrAuthenticationFailed(ProviderCerebras, err)
	case http.StatusTooManyRequests:
		return llm.ErrRateLimitExceeded(ProviderCerebras, err)
	case http.StatusNotFound:
		return llm.ErrModelNotFound(model, ProviderCerebras, err)
	}

	if llm.IsNetworkError(err) {
		return llm.ErrNetwork(ProviderCerebras, err)
	}

	return fmt.Errorf("cerebras API error: %w", err)
}

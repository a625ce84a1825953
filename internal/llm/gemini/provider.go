// Package gemini implements llm.Provider on top of the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/connorhough/qq/internal/llm"
)

const (
	ProviderGemini = "gemini"
	APIKeyEnvVar   = "GEMINI_API_KEY"
)

// The API wants full model names.
const (
	ModelFlash = "gemini-2.5-flash"
	ModelPro   = "gemini-2.5-pro"
)

// Provider implements the llm.Provider interface for Gemini API
type Provider struct {
	client *genai.Client
}

// NewProvider creates a new Gemini provider. baseURL is optional and only
// needed to point the client at a proxy or test server.
func NewProvider(ctx context.Context, apiKey string, baseURL string) (*Provider, error) {
	if apiKey == "" {
		return nil, llm.ErrAuthenticationFailed(ProviderGemini,
			fmt.Errorf("API key is required (set %s environment variable)", APIKeyEnvVar))
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, llm.ErrProviderNotAvailable(ProviderGemini, err)
	}

	return &Provider{
		client: client,
	}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return ProviderGemini
}

// DefaultModel returns the default model for Gemini
func (p *Provider) DefaultModel() string {
	return ModelFlash
}

// ValidateModel checks if a model is valid
// Gemini API will fail with helpful error if model is invalid,
// so we let it fail naturally and wrap the error
func (p *Provider) ValidateModel(model string) error {
	return nil
}

// Generate sends a prompt to Gemini and returns the response
func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	options := llm.BuildOptions(opts)

	modelName := options.Model
	if modelName == "" {
		modelName = p.DefaultModel()
	}

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(options.MaxTokens),
	}
	if options.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(options.SystemPrompt, genai.RoleUser)
	}

	return llm.RetryWithBackoff(ctx, func(ctx context.Context) (string, error) {
		resp, err := p.client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), config)
		if err != nil {
			return "", wrapError(modelName, err)
		}

		if len(resp.Candidates) == 0 {
			return "", fmt.Errorf("gemini API returned no candidates")
		}

		if resp.Candidates[0].Content == nil {
			return "", fmt.Errorf("gemini API returned nil content")
		}

		var result strings.Builder
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.Text != "" {
				result.WriteString(part.Text)
			}
		}

		output := strings.TrimSpace(result.String())
		if output == "" {
			return "", fmt.Errorf("gemini API returned empty response")
		}

		return output, nil
	})
}

// wrapError wraps Gemini API errors with appropriate typed errors
func wrapError(model string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		// Check status first (most reliable)
		switch apiErr.Status {
		case "INVALID_ARGUMENT":
			if strings.Contains(apiErr.Message, "API key") {
				return llm.ErrAuthenticationFailed(ProviderGemini, err)
			}
		case "UNAUTHENTICATED", "PERMISSION_DENIED":
			return llm.ErrAuthenticationFailed(ProviderGemini, err)
		case "RESOURCE_EXHAUSTED":
			return llm.ErrRateLimitExceeded(ProviderGemini, err)
		case "NOT_FOUND":
			return llm.ErrModelNotFound(model, ProviderGemini, err)
		}

		// Fallback to HTTP status code
		switch apiErr.Code {
		case 400:
			if strings.Contains(apiErr.Message, "API key") {
				return llm.ErrAuthenticationFailed(ProviderGemini, err)
			}
		case 401, 403:
			return llm.ErrAuthenticationFailed(ProviderGemini, err)
		case 429:
			return llm.ErrRateLimitExceeded(ProviderGemini, err)
		case 404:
			return llm.ErrModelNotFound(model, ProviderGemini, err)
		}
	}

	if llm.IsNetworkError(err) {
		return llm.ErrNetwork(ProviderGemini, err)
	}

	return fmt.Errorf("gemini API error: %w", err)
}

// Package llm specifies the provider interface and the pieces shared by every
// provider implementation: generate options, typed errors and retries.
package llm

import (
	"context"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Generate sends a prompt and returns the complete response text
	Generate(ctx context.Context, prompt string, opts ...Option) (string, error)

	// ValidateModel can be used to check if a model name is valid for this provider.
	ValidateModel(model string) error

	// DefaultModel returns the default model name for this provider
	DefaultModel() string

	// Name returns the provider name (e.g., "anthropic", "gemini")
	Name() string
}

// Package claude implements the llm.Provider interface on top of the Claude
// Code CLI, for users who are logged in there instead of holding an API key.
package claude

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/connorhough/qq/internal/llm"
)

const ProviderClaude = "claude"

// Model aliases understood by `claude --model`. Haiku is the default since
// answers are capped at a few hundred tokens anyway.
const (
	ModelHaiku  = "haiku"
	ModelSonnet = "sonnet"
	ModelOpus   = "opus"
)

// Provider implements the llm.Provider interface for Claude CLI
type Provider struct {
	cliPath string
}

// NewProvider creates a new Claude provider. An empty cliPath looks the
// binary up in PATH.
func NewProvider(cliPath string) (*Provider, error) {
	if cliPath == "" {
		cliPath = ProviderClaude
	}

	resolved, err := exec.LookPath(cliPath)
	if err != nil {
		return nil, llm.ErrProviderNotAvailable(ProviderClaude, err)
	}

	return &Provider{
		cliPath: resolved,
	}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return ProviderClaude
}

// DefaultModel returns the default model for Claude
func (p *Provider) DefaultModel() string {
	return ModelHaiku
}

// ValidateModel checks if a model is valid
func (p *Provider) ValidateModel(model string) error {
	return nil // No pre-validation, let CLI handle it
}

// Generate runs the CLI in print mode and returns its output. The CLI has no
// token limit flag, so MaxTokens is not forwarded.
func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	options := llm.BuildOptions(opts)

	model := options.Model
	if model == "" {
		model = p.DefaultModel()
	}

	args := []string{"--model", model}
	if options.SystemPrompt != "" {
		args = append(args, "--append-system-prompt", options.SystemPrompt)
	}
	args = append(args, "-p", prompt)

	cmd := exec.CommandContext(ctx, p.cliPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("claude CLI failed: %w (output: %s)", err, output)
	}

	result := strings.TrimSpace(string(output))
	if result == "" {
		return "", fmt.Errorf("claude CLI returned empty response")
	}

	return result, nil
}

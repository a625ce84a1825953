// Package providers implements the provider factory.
package providers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/connorhough/qq/internal/config"
	"github.com/connorhough/qq/internal/llm"
	"github.com/connorhough/qq/internal/llm/anthropic"
	"github.com/connorhough/qq/internal/llm/cerebras"
	"github.com/connorhough/qq/internal/llm/claude"
	"github.com/connorhough/qq/internal/llm/gemini"
)

// Names lists the supported provider names.
var Names = []string{
	anthropic.ProviderAnthropic,
	gemini.ProviderGemini,
	cerebras.ProviderCerebras,
	claude.ProviderClaude,
}

// Factory creates and caches provider instances
type Factory struct {
	cache map[string]llm.Provider
	mu    sync.RWMutex
}

// NewFactory creates a new provider factory
func NewFactory() *Factory {
	return &Factory{
		cache: make(map[string]llm.Provider),
	}
}

// GetProvider returns the provider named by cfg.Provider, built with the
// credentials in cfg on first use.
func (f *Factory) GetProvider(ctx context.Context, cfg *config.Settings) (llm.Provider, error) {
	name := cfg.Provider
	key := cacheKey(cfg)

	f.mu.RLock()
	if provider, ok := f.cache[key]; ok {
		f.mu.RUnlock()
		return provider, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	if provider, ok := f.cache[key]; ok {
		return provider, nil
	}

	var provider llm.Provider
	var err error

	switch name {
	case anthropic.ProviderAnthropic:
		var opts []option.RequestOption
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}
		provider, err = anthropic.NewProvider(cfg.APIKey, opts...)
	case gemini.ProviderGemini:
		provider, err = gemini.NewProvider(ctx, cfg.APIKey, cfg.BaseURL)
	case cerebras.ProviderCerebras:
		provider, err = cerebras.NewProvider(cfg.APIKey, cfg.BaseURL)
	case claude.ProviderClaude:
		provider, err = claude.NewProvider(cfg.CLIPath)
	default:
		return nil, fmt.Errorf("unknown provider: %s", name)
	}

	if err != nil {
		return nil, err
	}

	f.cache[key] = provider

	return provider, nil
}

// cacheKey separates instances of one provider built against different
// endpoints or credentials.
func cacheKey(cfg *config.Settings) string {
	return strings.Join([]string{cfg.Provider, cfg.BaseURL, cfg.CLIPath, cfg.APIKey}, "\x00")
}

// Global factory instance
var globalFactory = NewFactory()

// GetProvider is a convenience function that uses the global factory
func GetProvider(ctx context.Context, cfg *config.Settings) (llm.Provider, error) {
	return globalFactory.GetProvider(ctx, cfg)
}

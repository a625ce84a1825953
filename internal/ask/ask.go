// Package ask answers a single question: it sends the question to the
// configured provider, renders the Markdown in the answer for the terminal
// and prints it.
package ask

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/connorhough/qq/internal/config"
	"github.com/connorhough/qq/internal/format"
	"github.com/connorhough/qq/internal/llm"
	"github.com/connorhough/qq/internal/output"
)

// Answer sends question to provider with the given system prompt and returns
// the raw response text.
func Answer(ctx context.Context, provider llm.Provider, question string, cfg *config.Settings, systemPrompt string) (string, error) {
	opts := []llm.Option{
		llm.WithSystemPrompt(systemPrompt),
		llm.WithMaxTokens(cfg.MaxTokens),
	}

	resolvedModel := cfg.Model
	if resolvedModel == "" {
		resolvedModel = provider.DefaultModel()
	} else {
		if err := provider.ValidateModel(resolvedModel); err != nil {
			return "", err
		}
		opts = append(opts, llm.WithModel(resolvedModel))
	}

	slog.Debug("asking", "provider", provider.Name(), "model", resolvedModel,
		"max_tokens", cfg.MaxTokens, "question_length", len(question), "system_prompt_length", len(systemPrompt))

	start := time.Now()
	answer, err := provider.Generate(ctx, question, opts...)
	slog.Debug("answer received", "latency", time.Since(start), "length", len(answer), "error", err)
	if err != nil {
		return "", err
	}

	return answer, nil
}

// ShouldFormat reports whether answers written to streams.Out get ANSI
// styling. color "always" keeps styling for pipes such as `less -R`; "auto"
// styles only a terminal.
func ShouldFormat(cfg *config.Settings, streams *llm.IOStreams) bool {
	if !cfg.Format {
		return false
	}
	switch cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return streams.IsOutputTerminal()
	}
}

// Render prepares an answer for printing. Markdown is converted to ANSI only
// when enabled, which callers tie to config and to stdout being a terminal.
func Render(answer string, enabled bool) string {
	if !enabled {
		return answer
	}
	return format.Format(answer)
}

// Run asks the question and prints the rendered answer to streams.Out,
// showing a spinner on stderr while waiting.
func Run(ctx context.Context, streams *llm.IOStreams, provider llm.Provider, question string, cfg *config.Settings, systemPrompt string) error {
	var sp *output.Spinner
	if cfg.Spinner {
		sp = output.NewSpinner(streams, " thinking...")
	}

	sp.Start()
	answer, err := Answer(ctx, provider, question, cfg, systemPrompt)
	sp.Stop()
	if err != nil {
		return err
	}

	rendered := Render(answer, ShouldFormat(cfg, streams))
	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}

	delay := time.Duration(0)
	if cfg.Typing && streams.IsOutputTerminal() {
		delay = cfg.TypingDelay
	}
	if err := output.Type(ctx, streams.Out, rendered, delay); err != nil {
		return fmt.Errorf("failed to print answer: %w", err)
	}

	return nil
}

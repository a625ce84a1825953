// Package setup runs the first-time configuration dialogue.
package setup

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"

	"github.com/connorhough/qq/internal/config"
	"github.com/connorhough/qq/internal/llm"
)

// ErrEmptyAPIKey is returned when the user enters no API key.
var ErrEmptyAPIKey = errors.New("API key cannot be empty")

var displayNames = map[string]string{
	"anthropic": "Anthropic (Claude)",
	"gemini":    "Gemini",
	"cerebras":  "Cerebras",
}

// Run asks for the provider's API key, writes it to the config file and
// creates the custom prompt file. It returns the config file path.
func Run(streams *llm.IOStreams, provider string) (string, error) {
	path, err := config.Path()
	if err != nil {
		return "", err
	}

	fmt.Fprintln(streams.Out, "Welcome to Quick Question setup! 🚀")
	fmt.Fprintln(streams.Out)

	values := map[string]any{
		config.KeyProvider:  provider,
		config.KeyMaxTokens: viper.GetInt(config.KeyMaxTokens),
	}

	if provider != "claude" {
		name, ok := displayNames[provider]
		if !ok {
			name = provider
		}
		fmt.Fprintf(streams.Out, "Please enter your %s API key: ", name)

		key, err := readLine(streams.In)
		if err != nil {
			return "", err
		}
		if key == "" {
			return "", ErrEmptyAPIKey
		}
		values[config.APIKeyConfigKey(provider)] = key
	}

	if err := config.Save(path, values); err != nil {
		return "", err
	}

	promptPath, err := config.CustomPromptPath()
	if err != nil {
		return "", err
	}
	if err := config.EnsureCustomPromptFile(promptPath); err != nil {
		return "", err
	}

	fmt.Fprintln(streams.Out, "✅ Configuration saved!")
	fmt.Fprintf(streams.Out, "📁 Config file: %s\n", path)
	fmt.Fprintf(streams.Out, "📝 Custom prompt: %s\n", promptPath)
	fmt.Fprintln(streams.Out, "🔧 You can edit model and max_tokens settings there if needed.")
	fmt.Fprintln(streams.Out)
	fmt.Fprintln(streams.Out, `Try it out: qq "What is Go?"`)

	return path, nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

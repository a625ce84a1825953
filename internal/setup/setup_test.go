package setup

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/connorhough/qq/internal/config"
	"github.com/connorhough/qq/internal/llm"
)

func setupTestConfig(t *testing.T) string {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.SetDefault(config.KeyMaxTokens, config.DefaultMaxTokens)
	return filepath.Join(xdg, "qq")
}

// readSaved loads the written config file into a fresh viper instance.
func readSaved(t *testing.T, path string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("failed to read saved config: %v", err)
	}
	return v
}

func TestRun_SavesAPIKey(t *testing.T) {
	dir := setupTestConfig(t)
	streams, in, out := llm.TestIOStreams()
	in.WriteString("sk-ant-test\n")

	path, err := Run(streams, "anthropic")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if want := filepath.Join(dir, "config.yaml"); path != want {
		t.Errorf("path: got %q, want %q", path, want)
	}
	for _, msg := range []string{"Please enter your Anthropic (Claude) API key", "✅ Configuration saved!"} {
		if !strings.Contains(out.String(), msg) {
			t.Errorf("output missing %q", msg)
		}
	}

	v := readSaved(t, path)
	if got := v.GetString(config.KeyAPIKey); got != "sk-ant-test" {
		t.Errorf("api_key: got %q, want %q", got, "sk-ant-test")
	}
	if got := v.GetString(config.KeyProvider); got != "anthropic" {
		t.Errorf("provider: got %q, want %q", got, "anthropic")
	}
	if got := v.GetInt(config.KeyMaxTokens); got != 300 {
		t.Errorf("max_tokens: got %d, want 300", got)
	}

	if _, err := os.Stat(filepath.Join(dir, "custom_prompt.txt")); err != nil {
		t.Errorf("custom prompt file should be created: %v", err)
	}
}

func TestRun_ProviderSpecificKey(t *testing.T) {
	setupTestConfig(t)
	streams, in, _ := llm.TestIOStreams()
	in.WriteString("gem-key\n")

	path, err := Run(streams, "gemini")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	v := readSaved(t, path)
	if got := v.GetString("providers.gemini.api_key"); got != "gem-key" {
		t.Errorf("providers.gemini.api_key: got %q, want %q", got, "gem-key")
	}
	if got := v.GetString(config.KeyProvider); got != "gemini" {
		t.Errorf("provider: got %q, want %q", got, "gemini")
	}
}

func TestRun_EmptyAPIKey(t *testing.T) {
	dir := setupTestConfig(t)
	streams, in, _ := llm.TestIOStreams()
	in.WriteString("   \n")

	_, err := Run(streams, "anthropic")
	if !errors.Is(err, ErrEmptyAPIKey) {
		t.Errorf("got error %v, want %v", err, ErrEmptyAPIKey)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("nothing should be written, stat error = %v", err)
	}
}

func TestRun_ClaudeCLINeedsNoKey(t *testing.T) {
	setupTestConfig(t)
	streams, _, out := llm.TestIOStreams()

	if _, err := Run(streams, "claude"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(out.String(), "API key") {
		t.Errorf("claude CLI setup should not ask for an API key, got %q", out.String())
	}
}

// Package config provides configuration management functionality for the qq application.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppName names the config directory and the environment variable prefix.
const AppName = "qq"

// Configuration keys
const (
	KeyProvider    = "provider"
	KeyModel       = "model"
	KeyMaxTokens   = "max_tokens"
	KeyAPIKey      = "api_key"
	KeyLogLevel    = "log_level"
	KeyFormat      = "format"
	KeyColor       = "color"
	KeySpinner     = "spinner"
	KeyTyping      = "typing"
	KeyTypingDelay = "typing_delay"
)

// Values of the color setting.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ColorModes lists the accepted color values.
var ColorModes = []string{ColorAuto, ColorAlways, ColorNever}

// Defaults
const (
	DefaultProvider    = "anthropic"
	DefaultMaxTokens   = 300
	DefaultLogLevel    = "warn"
	DefaultTypingDelay = 8 * time.Millisecond
)

// SetDefaults registers default values and environment bindings on the
// global viper instance. It is safe to call more than once.
func SetDefaults() {
	viper.SetDefault(KeyProvider, DefaultProvider)
	viper.SetDefault(KeyMaxTokens, DefaultMaxTokens)
	viper.SetDefault(KeyLogLevel, DefaultLogLevel)
	viper.SetDefault(KeyFormat, true)
	viper.SetDefault(KeyColor, ColorAuto)
	viper.SetDefault(KeySpinner, true)
	viper.SetDefault(KeyTyping, false)
	viper.SetDefault(KeyTypingDelay, DefaultTypingDelay)

	viper.SetEnvPrefix(strings.ToUpper(AppName))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Well-known provider variables win over the config file.
	_ = viper.BindEnv(KeyAPIKey, "QQ_API_KEY", "ANTHROPIC_API_KEY", "CLAUDE_API_KEY")
	_ = viper.BindEnv(providerKey("gemini", "api_key"), "QQ_PROVIDERS_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = viper.BindEnv(providerKey("cerebras", "api_key"), "QQ_PROVIDERS_CEREBRAS_API_KEY", "CEREBRAS_API_KEY")
}

// Dir returns the directory holding qq's config file and custom prompt:
// $XDG_CONFIG_HOME/qq, or ~/.config/qq.
func Dir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// Path returns the config file in use, or the default location when none
// has been read yet.
func Path() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// GetValue retrieves a configuration value by key
func GetValue(key string) (string, error) {
	if !viper.IsSet(key) {
		return "", fmt.Errorf("key '%s' not found in configuration", key)
	}
	return viper.GetString(key), nil
}

// SetValue sets a configuration value by key and persists it to the config
// file, creating the file from the template if needed.
func SetValue(key string, value string) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := EnsureConfigExists(path); err != nil {
		return err
	}
	viper.Set(key, value)
	return viper.WriteConfigAs(path)
}

// List returns every set configuration value as "key = value", sorted by
// key. API keys are masked.
func List() []string {
	keys := viper.AllKeys()
	slices.Sort(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		value := viper.GetString(key)
		if value == "" {
			continue
		}
		if strings.HasSuffix(key, KeyAPIKey) {
			value = mask(value)
		}
		lines = append(lines, key+" = "+value)
	}
	return lines
}

func mask(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "****" + secret[len(secret)-4:]
}

// Settings is the resolved configuration for one question.
type Settings struct {
	Provider    string
	Model       string
	MaxTokens   int
	APIKey      string
	BaseURL     string
	CLIPath     string
	LogLevel    string
	Format      bool
	Color       string
	Spinner     bool
	Typing      bool
	TypingDelay time.Duration
}

// Resolve builds Settings from viper.
// Precedence for model and API key: provider-specific config -> global config.
// Flags are handled separately in command layer
func Resolve() *Settings {
	s := &Settings{
		Provider:    viper.GetString(KeyProvider),
		MaxTokens:   viper.GetInt(KeyMaxTokens),
		LogLevel:    viper.GetString(KeyLogLevel),
		Format:      viper.GetBool(KeyFormat),
		Color:       strings.ToLower(strings.TrimSpace(viper.GetString(KeyColor))),
		Spinner:     viper.GetBool(KeySpinner),
		Typing:      viper.GetBool(KeyTyping),
		TypingDelay: viper.GetDuration(KeyTypingDelay),
	}
	if s.Provider == "" {
		s.Provider = DefaultProvider
	}
	if s.Color == "" {
		s.Color = ColorAuto
	}
	s.resolveProvider()
	return s
}

func (s *Settings) resolveProvider() {
	if key := providerKey(s.Provider, "model"); viper.IsSet(key) {
		s.Model = viper.GetString(key)
	} else {
		s.Model = viper.GetString(KeyModel)
	}

	s.APIKey = viper.GetString(providerKey(s.Provider, "api_key"))
	if s.APIKey == "" && s.Provider == DefaultProvider {
		s.APIKey = viper.GetString(KeyAPIKey)
	}

	s.BaseURL = viper.GetString(providerKey(s.Provider, "base_url"))
	s.CLIPath = viper.GetString(providerKey(s.Provider, "cli_path"))
}

// ApplyFlags applies flag overrides to config (called from command layer).
// Switching provider re-reads the provider-specific model and credentials.
func (s *Settings) ApplyFlags(providerFlag, modelFlag string, maxTokensFlag int) {
	if providerFlag != "" && providerFlag != s.Provider {
		s.Provider = providerFlag
		s.resolveProvider()
	}
	if modelFlag != "" {
		s.Model = modelFlag
	}
	if maxTokensFlag > 0 {
		s.MaxTokens = maxTokensFlag
	}
}

// NeedsSetup reports whether an API key must be configured before the
// provider can be used. The claude provider authenticates through its CLI.
func (s *Settings) NeedsSetup() bool {
	return s.APIKey == "" && s.Provider != "claude"
}

// APIKeyConfigKey returns the key under which the API key for provider is stored.
func APIKeyConfigKey(provider string) string {
	if provider == DefaultProvider {
		return KeyAPIKey
	}
	return providerKey(provider, "api_key")
}

// ParseLogLevel maps a log_level value to a slog level, defaulting to warn.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func providerKey(provider, field string) string {
	return fmt.Sprintf("providers.%s.%s", provider, field)
}

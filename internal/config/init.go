package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// EnsureConfigExists creates a config file with template if it doesn't exist
func EnsureConfigExists(configPath string) error {
	return writeIfMissing(configPath, configTemplate, 0600)
}

// CustomPromptPath returns the custom prompt file that sits next to the
// config file.
func CustomPromptPath() (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(path), "custom_prompt.txt"), nil
}

// EnsureCustomPromptFile writes the commented custom prompt template to path
// unless the file already exists.
func EnsureCustomPromptFile(path string) error {
	return writeIfMissing(path, customPromptTemplate, 0644)
}

// Save merges values into the config file at path and persists it. The file
// is created from the template first so its comments survive for new users.
func Save(path string, values map[string]any) error {
	if err := EnsureConfigExists(path); err != nil {
		return err
	}

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	for key, value := range values {
		viper.Set(key, value)
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	// The file may hold an API key.
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to restrict config permissions: %w", err)
	}

	return nil
}

func writeIfMissing(path, content string, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		return nil // Already exists, nothing to do
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	return nil
}

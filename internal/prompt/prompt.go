// Package prompt builds the system prompt sent with every question.
package prompt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Default is the system prompt used when no custom prompt is configured.
const Default = "You are a helpful assistant designed to give quick, concise answers to terminal users. " +
	"Keep responses under 280 characters when possible, but feel free to go a bit longer if necessary for clarity. " +
	"Match the user's tone - if they ask something silly, be playful back. If they ask for facts, be matter-of-fact. " +
	"Never ask follow-up questions or try to continue the conversation. " +
	"When appropriate, include relevant links or sources. " +
	"Feel free to use ASCII art or terminal-friendly formatting when it adds value. " +
	"You may use **bold**, *italic*, `code` and ~~strikethrough~~; avoid headings, tables and links in Markdown syntax. " +
	"Remember: your response will be displayed directly in a terminal."

// Build returns the default prompt with the user's custom instructions
// appended. Lines starting with '#' in custom are comments and dropped.
func Build(custom string) string {
	extra := StripComments(custom)
	if extra == "" {
		return Default
	}
	return Default + "\n\n" + extra
}

// StripComments removes '#' comment lines and surrounding whitespace.
func StripComments(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// Load reads the custom prompt file at path. A missing file is not an error
// and yields an empty prompt.
func Load(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read custom prompt: %w", err)
	}
	return string(b), nil
}

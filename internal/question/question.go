// Package question acquires the user's question from command-line arguments,
// an interactive prompt or piped standard input.
package question

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/connorhough/qq/internal/llm"
)

const (
	promptText    = "❓ Enter your question: "
	retryPrompt   = "Enter your complete question: "
	mangledNotice = `🤔 It looks like your question might have been cut off by the shell.
💡 Tip: Put quotes around questions with apostrophes or special characters:
   qq "your question here"
   Or use interactive mode: qq -i

`
)

// Acquire returns the question to ask. Arguments are joined with spaces;
// with no arguments, or when interactive is set, the question is read from
// streams instead. Arguments that look mangled by the shell trigger a notice
// and an interactive re-read.
func Acquire(args []string, interactive bool, streams *llm.IOStreams) (string, error) {
	if interactive || len(args) == 0 {
		return Read(streams, promptText)
	}

	joined := strings.Join(args, " ")
	if !LooksIncomplete(joined) {
		return joined, nil
	}

	fmt.Fprint(streams.Out, mangledNotice)
	return Read(streams, retryPrompt)
}

// Read reads a question from streams. When stdin is a terminal the prompt is
// shown and one line is read; otherwise all of stdin is consumed, so
// `cat notes.txt | qq` asks about the whole input.
func Read(streams *llm.IOStreams, prompt string) (string, error) {
	if !streams.IsInteractive() {
		b, err := io.ReadAll(streams.In)
		if err != nil {
			return "", fmt.Errorf("failed to read question from stdin: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	fmt.Fprint(streams.Out, prompt)

	line, err := bufio.NewReader(streams.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read question: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// LooksIncomplete reports whether input shows signs of shell mangling: an
// unclosed quote or trailing backslash, or a very short input made mostly of
// quoting characters.
func LooksIncomplete(input string) bool {
	switch {
	case input == "":
		return true
	case strings.HasSuffix(input, "'"), strings.HasSuffix(input, `"`), strings.HasSuffix(input, `\`):
		return true
	case utf8.RuneCountInString(input) < 5 && strings.ContainsAny(input, "'\"`\\"):
		return true
	}
	return false
}

package output

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// Type writes text to w one grapheme at a time, pausing delay after each
// visible one. Escape sequences are written in one piece so a cancelled run
// never leaves a half-written sequence. A non-positive delay writes
// everything at once.
func Type(ctx context.Context, w io.Writer, text string, delay time.Duration) error {
	if delay <= 0 {
		_, err := io.WriteString(w, text)
		return err
	}

	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	state := ansi.NormalState
	for len(text) > 0 {
		seq, width, n, newState := ansi.DecodeSequence(text, state, nil)
		state = newState
		if n <= 0 {
			seq, n = text[:1], 1
		}
		if _, err := io.WriteString(w, seq); err != nil {
			return err
		}
		text = text[n:]

		// Control and escape sequences take no time on screen.
		if width == 0 || len(text) == 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return nil
}

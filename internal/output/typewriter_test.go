package output

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/connorhough/qq/internal/llm"
)

// recorder keeps every Write call separately.
type recorder struct {
	writes []string
}

func (r *recorder) Write(p []byte) (int, error) {
	r.writes = append(r.writes, string(p))
	return len(p), nil
}

func TestType(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		delay time.Duration
		want  []string
	}{
		{
			name:  "no delay writes once",
			text:  "hello",
			delay: 0,
			want:  []string{"hello"},
		},
		{
			name:  "escape sequences written whole",
			text:  "\x1b[1mhé\x1b[0m!",
			delay: time.Microsecond,
			want:  []string{"\x1b[1m", "h", "é", "\x1b[0m", "!"},
		},
		{
			name:  "multi-digit parameters",
			text:  "\x1b[93mx\x1b[0m",
			delay: time.Microsecond,
			want:  []string{"\x1b[93m", "x", "\x1b[0m"},
		},
		{
			name:  "combining mark stays with its base",
			text:  "e\u0301!",
			delay: time.Microsecond,
			want:  []string{"e\u0301", "!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			if err := Type(context.Background(), rec, tt.text, tt.delay); err != nil {
				t.Fatalf("Type() error = %v", err)
			}
			if !slices.Equal(rec.writes, tt.want) {
				t.Errorf("writes = %q, want %q", rec.writes, tt.want)
			}
		})
	}
}

func TestType_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := Type(ctx, &buf, "abcdef", time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got error %v, want context.Canceled", err)
	}
	if got := buf.String(); got != "a" {
		t.Errorf("got %q, want %q", got, "a")
	}
}

func TestType_CancelledAfterEscapeSequence(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_ = Type(ctx, &buf, "\x1b[1mbold\x1b[0m", time.Hour)
	if got := buf.String(); got != "\x1b[1mb" {
		t.Errorf("got %q, want %q", got, "\x1b[1mb")
	}
}

func TestNewSpinner_NotTerminal(t *testing.T) {
	streams, _, out := llm.TestIOStreamsNonInteractive()

	sp := NewSpinner(streams, " thinking")
	if sp != nil {
		t.Fatalf("expected nil spinner when stderr is not a terminal")
	}

	// A nil spinner is a no-op.
	sp.Start()
	sp.Stop()
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

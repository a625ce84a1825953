package format

import (
	"strings"
	"sync"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bold",
			input: "**bold**",
			want:  "\x1b[1mbold\x1b[0m",
		},
		{
			name:  "italic",
			input: "*italic*",
			want:  "\x1b[3mitalic\x1b[0m",
		},
		{
			name:  "inline code",
			input: "`code`",
			want:  "\x1b[93mcode\x1b[0m",
		},
		{
			name:  "strikethrough",
			input: "~~gone~~",
			want:  "\x1b[9mgone\x1b[0m",
		},
		{
			name:  "fences are stripped",
			input: "```block```",
			want:  "block",
		},
		{
			name:  "fenced block with language tag",
			input: "```go\nfmt.Println()\n```",
			want:  "go\nfmt.Println()\n",
		},
		{
			name:  "single fence is stripped without a partner",
			input: "before ``` after",
			want:  "before  after",
		},
		{
			name:  "mixed sentence",
			input: "Here's a test: **bold text**, *italic text*, `code block`, and ~~strikethrough~~!",
			want:  "Here's a test: \x1b[1mbold text\x1b[0m, \x1b[3mitalic text\x1b[0m, \x1b[93mcode block\x1b[0m, and \x1b[9mstrikethrough\x1b[0m!",
		},
		{
			name:  "empty bold",
			input: "****",
			want:  "\x1b[1m\x1b[0m",
		},
		{
			name:  "empty code",
			input: "``",
			want:  "\x1b[93m\x1b[0m",
		},
		{
			name:  "single asterisks inside bold stay literal",
			input: "**a*b*c**",
			want:  "\x1b[1ma*b*c\x1b[0m",
		},
		{
			name:  "asterisks inside code stay literal",
			input: "`*ptr*`",
			want:  "\x1b[93m*ptr*\x1b[0m",
		},
		{
			name:  "same marker is not nested",
			input: "**a **b** c**",
			want:  "\x1b[1ma \x1b[0mb\x1b[1m c\x1b[0m",
		},
		{
			name:  "code inside bold",
			input: "**see `x`**",
			want:  "\x1b[1msee \x1b[93mx\x1b[0m\x1b[0m",
		},
		{
			name:  "triple asterisks",
			input: "***x***",
			want:  "\x1b[1m*x\x1b[0m*",
		},
		{
			name:  "unmatched bold with italic after it",
			input: "**bold *it*",
			want:  "**bold \x1b[3mit\x1b[0m",
		},
		{
			name:  "multibyte content",
			input: "**日本**語 *é*",
			want:  "\x1b[1m日本\x1b[0m語 \x1b[3mé\x1b[0m",
		},
		{
			name:  "backslash has no escaping meaning",
			input: `\*not escaped*`,
			want:  "\\\x1b[3mnot escaped\x1b[0m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.input); got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat_UnmatchedOpenersDegradeToText(t *testing.T) {
	inputs := []string{
		"**bold",
		"`code",
		"~~gone",
		"*italic",
		"a * b",
		"trailing *",
		"~ tilde ~",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got := Format(input)
			if got != input {
				t.Errorf("got %q, want %q", got, input)
			}
			if strings.Contains(got, "\x1b[") {
				t.Errorf("unexpected escape sequence in %q", got)
			}
		})
	}
}

func TestFormat_IdentityWithoutMarkers(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"line one\nline two\n",
		"naïve café, 日本語, emoji 🚀",
		`C:\path\to\file`,
		"tabs\tand  spaces",
	}

	for _, input := range inputs {
		if got := Format(input); got != input {
			t.Errorf("got %q, want %q", got, input)
		}
	}
}

func TestFormat_InvalidUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "stray bytes without markers",
			input: "caf\xe9 \xff\xfe end",
			want:  "caf\xe9 \xff\xfe end",
		},
		{
			name:  "truncated multibyte rune",
			input: "\xe6\x97",
			want:  "\xe6\x97",
		},
		{
			name:  "encoded surrogate",
			input: "\xed\xb0\x80",
			want:  "\xed\xb0\x80",
		},
		{
			name:  "invalid bytes inside bold",
			input: "**\xff**",
			want:  "\x1b[1m\xff\x1b[0m",
		},
		{
			name:  "invalid bytes inside italic",
			input: "*a\x80b*",
			want:  "\x1b[3ma\x80b\x1b[0m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.input); got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat_Concurrent(t *testing.T) {
	const input = "**bold** *italic* `code` ~~gone~~"
	want := Format(input)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := Format(input); got != want {
					t.Errorf("got %q, want %q", got, want)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func FuzzFormat(f *testing.F) {
	seeds := []string{
		"**bold**",
		"*a**b*",
		"``````",
		"~~~",
		"`*`*`",
		"日*本*語",
		"\xff*\xfe*",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		got := Format(input)
		if !strings.ContainsAny(input, "*`~") && got != input {
			t.Errorf("text without markers changed: got %q, want %q", got, input)
		}
	})
}

// Package format renders the small Markdown subset LLM answers use into ANSI
// escape sequences for display in a terminal.
//
// Format is not idempotent: feeding already rendered output back in is not
// supported.
package format

import (
	"strings"
	"unicode/utf8"
)

// SGR sequences emitted by Format.
const (
	Bold          = "\x1b[1m"
	Italic        = "\x1b[3m"
	Strikethrough = "\x1b[9m"
	BrightYellow  = "\x1b[93m"
	Reset         = "\x1b[0m"
)

const fence = "```"

// span is a paired delimiter and the escape sequences that replace it.
type span struct {
	marker []rune
	start  string
	end    string
}

// Passes run in this order so that multi-character markers are consumed
// before the single asterisk italic pass sees the text.
var spans = []span{
	{marker: []rune("**"), start: Bold, end: Reset},
	{marker: []rune("`"), start: BrightYellow, end: Reset},
	{marker: []rune("~~"), start: Strikethrough, end: Reset},
}

// Format converts bold, inline code, strikethrough and italic markers in text
// into ANSI sequences and strips code fences. Markers without a closing
// partner are left in place as literal text. Bytes that are not valid UTF-8
// are copied through unchanged. It never fails and is safe for concurrent use.
func Format(text string) string {
	buf := newBuffer(strings.ReplaceAll(text, fence, ""))
	for _, s := range spans {
		buf = replacePairs(buf, s)
	}
	return replaceItalic(buf)
}

// buffer is the text between passes. enclosed[i] is set for runes that were
// the content of a resolved span; an asterisk there is never an italic marker.
type buffer struct {
	runes    []rune
	enclosed []bool
}

// Invalid UTF-8 bytes are carried as lone low surrogates (U+DC80..U+DCFF),
// which decoding valid UTF-8 never yields, and turned back into the original
// byte on output.
const rawByteBase = 0xDC00

func newBuffer(s string) buffer {
	runes := make([]rune, 0, len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			r = rawByteBase + rune(s[0])
		}
		runes = append(runes, r)
		s = s[size:]
	}
	return buffer{runes: runes, enclosed: make([]bool, len(runes))}
}

func writeRune(b *strings.Builder, r rune) {
	if r >= rawByteBase+0x80 && r <= rawByteBase+0xFF {
		b.WriteByte(byte(r - rawByteBase))
		return
	}
	b.WriteRune(r)
}

func (b *buffer) writeString(s string) {
	for _, r := range s {
		b.runes = append(b.runes, r)
		b.enclosed = append(b.enclosed, false)
	}
}

func (b *buffer) write(r rune, enclosed bool) {
	b.runes = append(b.runes, r)
	b.enclosed = append(b.enclosed, enclosed)
}

func replacePairs(in buffer, s span) buffer {
	runes := in.runes
	n, m := len(runes), len(s.marker)

	out := buffer{
		runes:    make([]rune, 0, n),
		enclosed: make([]bool, 0, n),
	}

	for i := 0; i < n; {
		if !hasMarkerAt(runes, i, s.marker) {
			out.write(runes[i], in.enclosed[i])
			i++
			continue
		}

		j := indexFrom(runes, i+m, s.marker)
		if j < 0 {
			out.write(runes[i], in.enclosed[i])
			i++
			continue
		}

		out.writeString(s.start)
		for k := i + m; k < j; k++ {
			out.write(runes[k], true)
		}
		out.writeString(s.end)
		i = j + m
	}

	return out
}

func replaceItalic(in buffer) string {
	runes := in.runes
	n := len(runes)

	// star reports whether position i holds an asterisk that can take part
	// in italic markup.
	star := func(i int) bool {
		return i >= 0 && i < n && runes[i] == '*' && !in.enclosed[i]
	}

	var b strings.Builder
	b.Grow(n)

	for i := 0; i < n; {
		if !star(i) || star(i-1) || star(i+1) {
			writeRune(&b, runes[i])
			i++
			continue
		}

		j := i + 1
		for j < n && !(star(j) && !star(j+1)) {
			j++
		}
		if j >= n {
			writeRune(&b, runes[i])
			i++
			continue
		}

		b.WriteString(Italic)
		for _, r := range runes[i+1 : j] {
			writeRune(&b, r)
		}
		b.WriteString(Reset)
		i = j + 1
	}

	return b.String()
}

// hasMarkerAt reports whether marker occurs in runes starting at i.
func hasMarkerAt(runes []rune, i int, marker []rune) bool {
	if i < 0 || i+len(marker) > len(runes) {
		return false
	}
	for k, r := range marker {
		if runes[i+k] != r {
			return false
		}
	}
	return true
}

// indexFrom returns the first index >= from at which marker occurs, or -1.
func indexFrom(runes []rune, from int, marker []rune) int {
	for j := from; j+len(marker) <= len(runes); j++ {
		if hasMarkerAt(runes, j, marker) {
			return j
		}
	}
	return -1
}

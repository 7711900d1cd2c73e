package output

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// SanitizeTerminal makes a string safe to print to an interactive terminal by
// replacing control characters with visible escape sequences (e.g. "\x1b").
// Tabs and newlines are kept. Examples:
//   - "hi\x1b[31mred" -> "hi\x1b[31mred" (ESC becomes visible)
//   - "bad:\xff"      -> "bad:\xff" (invalid UTF-8 byte)
//   - "a\tb\nc"       -> "a\tb\nc"
func SanitizeTerminal(s string) string {
	return sanitize(s, true)
}

// SanitizeLine is SanitizeTerminal for text that must stay on one line,
// such as table cells and the status line: tabs and newlines are escaped too.
func SanitizeLine(s string) string {
	return sanitize(s, false)
}

func sanitize(s string, keepLayout bool) string {
	idx := firstUnsafe(s, keepLayout)
	if idx == len(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	b.WriteString(s[:idx])

	for idx < len(s) {
		r, size := utf8.DecodeRuneInString(s[idx:])
		switch {
		case r == utf8.RuneError && size == 1:
			appendEscapedByte(&b, s[idx])
		case keepLayout && (r == '\n' || r == '\t'):
			b.WriteRune(r)
		case unicode.IsControl(r):
			appendEscapedRune(&b, r)
		default:
			b.WriteString(s[idx : idx+size])
		}
		idx += size
	}
	return b.String()
}

// firstUnsafe returns the offset of the first byte that needs escaping, or len(s).
func firstUnsafe(s string, keepLayout bool) int {
	idx := 0
	for idx < len(s) {
		r, size := utf8.DecodeRuneInString(s[idx:])
		if r == utf8.RuneError && size == 1 {
			return idx
		}
		if keepLayout && (r == '\n' || r == '\t') {
			idx += size
			continue
		}
		if unicode.IsControl(r) {
			return idx
		}
		idx += size
	}
	return idx
}

func appendEscapedByte(b *strings.Builder, bt byte) {
	b.WriteString(`\x`)
	b.WriteByte(hexDigits[bt>>4])
	b.WriteByte(hexDigits[bt&0x0f])
}

// appendEscapedRune writes "\xHH", "\uHHHH" or "\UHHHHHHHH" depending on the
// size of r.
func appendEscapedRune(b *strings.Builder, r rune) {
	switch {
	case r <= 0xFF:
		appendEscapedByte(b, byte(r))
	case r <= 0xFFFF:
		b.WriteString(`\u`)
		appendHex(b, uint32(r), 4)
	default:
		b.WriteString(`\U`)
		appendHex(b, uint32(r), 8)
	}
}

func appendHex(b *strings.Builder, v uint32, digits int) {
	for shift := (digits - 1) * 4; shift >= 0; shift -= 4 {
		b.WriteByte(hexDigits[(v>>uint(shift))&0x0f])
	}
}

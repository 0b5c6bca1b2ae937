package sqlerr

import "strings"

const (
	ansiReset     = "\x1b[0m"
	ansiBright    = "\x1b[1m"
	ansiUnderline = "\x1b[4m"
	ansiRed       = "\x1b[31m"
)

// Highlight returns src with the error range marked in bold, underlined red.
// Offsets are character (rune) offsets, clamped to the text.
func Highlight(src string, e *Error) string {
	runes := []rune(src)
	start, end := clamp(e.Start, len(runes)), clamp(e.End, len(runes))
	if end < start {
		end = start
	}

	var b strings.Builder
	b.WriteString(string(runes[:start]))
	b.WriteString(ansiBright + ansiUnderline + ansiRed)
	if start == end {
		// zero width: mark the position itself
		b.WriteString("^")
	} else {
		b.WriteString(string(runes[start:end]))
	}
	b.WriteString(ansiReset)
	b.WriteString(string(runes[end:]))
	return b.String()
}

// Excerpt returns the source characters covered by the error.
func Excerpt(src string, e *Error) string {
	runes := []rune(src)
	start, end := clamp(e.Start, len(runes)), clamp(e.End, len(runes))
	if end <= start {
		return ""
	}
	return string(runes[start:end])
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

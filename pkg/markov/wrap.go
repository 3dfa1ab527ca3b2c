package markov

import (
	"strings"
	"unicode/utf8"
)

// Wrap breaks text into lines of at most width columns at spaces. A single
// word wider than width is placed on a line of its own. A width of zero or
// less returns text unchanged.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var builder strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(text) {
		wordLen := utf8.RuneCountInString(word)
		switch {
		case lineLen == 0:
		case lineLen+1+wordLen > width:
			builder.WriteByte('\n')
			lineLen = 0
		default:
			builder.WriteByte(' ')
			lineLen++
		}
		builder.WriteString(word)
		lineLen += wordLen
	}
	return builder.String()
}

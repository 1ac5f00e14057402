package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultSnippetLength is the snippet size used when a caller passes zero or
// a negative limit.
const DefaultSnippetLength = 120

// Snippet returns a single-line preview of s for log output. Runs of
// whitespace collapse to one space. When the result is longer than maxLen
// bytes it is cut at a rune boundary and suffixed with the original length.
func Snippet(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultSnippetLength
	}
	flat := strings.Join(strings.Fields(s), " ")
	if len(flat) <= maxLen {
		return flat
	}

	cut := maxLen
	for cut > 0 && !utf8.RuneStart(flat[cut]) {
		cut--
	}
	return fmt.Sprintf("%s... (truncated, total: %d bytes)", flat[:cut], len(s))
}

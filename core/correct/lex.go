package correct

import "strings"

// skipString returns the offset just past the string literal that quote
// opens at i and whether the literal is closed. An unterminated literal runs
// to len(s).
func skipString(s string, i int, quote byte) (int, bool) {
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j + 1, true
		}
	}
	return len(s), false
}

// skipComment returns the offset just past a // or /* */ comment starting at
// i, or i when there is none. Line comments stop before the newline.
func skipComment(s string, i int) int {
	if i+1 >= len(s) || s[i] != '/' {
		return i
	}
	switch s[i+1] {
	case '/':
		if end := strings.IndexByte(s[i:], '\n'); end >= 0 {
			return i + end
		}
		return len(s)
	case '*':
		if end := strings.Index(s[i+2:], "*/"); end >= 0 {
			return i + 2 + end + 2
		}
		return len(s)
	}
	return i
}

// skipLayout returns the offset of the next byte at or after i that is
// neither whitespace nor part of a comment.
func skipLayout(s string, i int) int {
	for i < len(s) {
		if isSpace(s[i]) {
			i++
			continue
		}
		if j := skipComment(s, i); j > i {
			i = j
			continue
		}
		break
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWord(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

func isKeyByte(c byte) bool {
	return isWord(c) || c == '$' || c == '-'
}

package correct

import "strings"

// Rule names, in declared order.
const (
	RuleUnquotedKeys       = "unquoted-keys"
	RuleSingleQuotes       = "single-quotes"
	RuleTrailingCommas     = "trailing-commas"
	RuleUnbalancedBrackets = "unbalanced-brackets"
	RulePythonLiterals     = "python-literals"
	RuleComments           = "comments"
	RuleDuplicateCommas    = "duplicate-commas"
	RuleBareValues         = "bare-values"
	// RuleRepair names the jsonrepair fallback; it is not part of Rules.
	RuleRepair = "jsonrepair"
)

// Rule is a named, pure text rewrite. Apply must return its input unchanged
// when the rule has nothing to fix.
type Rule struct {
	Name  string
	Apply func(string) string
}

// Rules returns the default rule list in priority order.
func Rules() []Rule {
	return []Rule{
		{Name: RuleUnquotedKeys, Apply: QuoteKeys},
		{Name: RuleSingleQuotes, Apply: SingleQuotes},
		{Name: RuleTrailingCommas, Apply: TrailingCommas},
		{Name: RuleUnbalancedBrackets, Apply: BalanceBrackets},
		{Name: RulePythonLiterals, Apply: PythonLiterals},
		{Name: RuleComments, Apply: StripComments},
		{Name: RuleDuplicateCommas, Apply: DuplicateCommas},
		{Name: RuleBareValues, Apply: QuoteBareValues},
	}
}

// copyLiteral writes the string literal or comment starting at i to b and
// returns the offset after it, or i when neither starts there.
func copyLiteral(b *strings.Builder, s string, i int, singles bool) int {
	c := s[i]
	if c == '"' || singles && c == '\'' {
		j, _ := skipString(s, i, c)
		b.WriteString(s[i:j])
		return j
	}
	if j := skipComment(s, i); j > i {
		b.WriteString(s[i:j])
		return j
	}
	return i
}

// QuoteKeys wraps bare identifier keys in double quotes: {name: 1} becomes
// {"name": 1}. Only tokens right after { or , and followed by a colon are
// rewritten.
func QuoteKeys(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	var prev byte
	for i := 0; i < len(s); {
		if j := copyLiteral(&b, s, i, true); j > i {
			if s[i] == '"' || s[i] == '\'' {
				prev = s[i]
			}
			i = j
			continue
		}
		c := s[i]
		if isKeyByte(c) && c != '-' && (prev == '{' || prev == ',') {
			j := i
			for j < len(s) && isKeyByte(s[j]) {
				j++
			}
			if k := skipLayout(s, j); k < len(s) && s[k] == ':' {
				b.WriteByte('"')
				b.WriteString(s[i:j])
				b.WriteByte('"')
			} else {
				b.WriteString(s[i:j])
			}
			prev = s[j-1]
			i = j
			continue
		}
		b.WriteByte(c)
		if !isSpace(c) {
			prev = c
		}
		i++
	}
	return b.String()
}

// SingleQuotes converts '...' literals to "..." when the content holds no
// unescaped double quote. Ambiguous or unterminated literals are left alone.
func SingleQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if j := copyLiteral(&b, s, i, false); j > i {
			i = j
			continue
		}
		if s[i] != '\'' {
			b.WriteByte(s[i])
			i++
			continue
		}
		j, closed := skipString(s, i, '\'')
		body := s[i+1 : max(j-1, i+1)]
		if !closed || hasUnescapedQuote(body) {
			b.WriteByte('\'')
			i++
			continue
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(body, `\'`, `'`))
		b.WriteByte('"')
		i = j
	}
	return b.String()
}

func hasUnescapedQuote(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return true
		}
	}
	return false
}

// TrailingCommas drops a comma when only whitespace or comments separate it
// from a closing } or ].
func TrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if j := copyLiteral(&b, s, i, true); j > i {
			i = j
			continue
		}
		if s[i] == ',' {
			if k := skipLayout(s, i+1); k < len(s) && (s[k] == '}' || s[k] == ']') {
				i++
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// BalanceBrackets completes truncated JSON. It closes an unterminated string,
// closes openers left open before a mismatched closer, drops closers that
// have no opener and appends the remaining closers in LIFO order.
func BalanceBrackets(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	var stack []byte
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			if c == '\\' {
				if i+1 == len(s) {
					// A dangling escape would swallow the closing quote.
					break
				}
				b.WriteByte(c)
				i++
				b.WriteByte(s[i])
				continue
			}
			b.WriteByte(c)
			if c == '"' {
				inString = false
			}
			continue
		}
		if j := skipComment(s, i); j > i {
			b.WriteString(s[i:j])
			i = j - 1
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			k := len(stack) - 1
			for k >= 0 && stack[k] != c {
				k--
			}
			if k < 0 {
				continue
			}
			for len(stack)-1 > k {
				b.WriteByte(stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			stack = stack[:k]
		}
		b.WriteByte(c)
	}
	if inString {
		b.WriteByte('"')
	}
	for k := len(stack) - 1; k >= 0; k-- {
		b.WriteByte(stack[k])
	}
	return b.String()
}

var pythonLiterals = map[string]string{
	"True":  "true",
	"False": "false",
	"None":  "null",
}

// PythonLiterals rewrites bare True, False and None to their JSON spelling.
func PythonLiterals(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if j := copyLiteral(&b, s, i, true); j > i {
			i = j
			continue
		}
		if !isWord(s[i]) {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := i
		for j < len(s) && isWord(s[j]) {
			j++
		}
		if lit, ok := pythonLiterals[s[i:j]]; ok {
			b.WriteString(lit)
		} else {
			b.WriteString(s[i:j])
		}
		i = j
	}
	return b.String()
}

// StripComments removes // and /* */ comments outside string literals.
func StripComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c == '"' || c == '\'' {
			j, _ := skipString(s, i, c)
			b.WriteString(s[i:j])
			i = j
			continue
		}
		if j := skipComment(s, i); j > i {
			i = j
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

// DuplicateCommas drops commas that directly follow another comma or an
// opening bracket: [1,,2] and [,1] both become [1,...].
func DuplicateCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev byte
	for i := 0; i < len(s); {
		if j := copyLiteral(&b, s, i, true); j > i {
			if s[i] == '"' || s[i] == '\'' {
				prev = s[i]
			}
			i = j
			continue
		}
		c := s[i]
		if c == ',' && (prev == ',' || prev == '[' || prev == '{') {
			i++
			continue
		}
		b.WriteByte(c)
		if !isSpace(c) {
			prev = c
		}
		i++
	}
	return b.String()
}

var bareKeywords = map[string]bool{
	"true": true, "false": true, "null": true,
	"True": true, "False": true, "None": true,
	"NaN": true, "Infinity": true, "undefined": true,
}

// QuoteBareValues quotes bare words in value position: {"status": done}
// becomes {"status": "done"}. Keywords and numbers are left alone.
func QuoteBareValues(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	var stack []byte
	var prev byte
	for i := 0; i < len(s); {
		if j := copyLiteral(&b, s, i, true); j > i {
			if s[i] == '"' || s[i] == '\'' {
				prev = s[i]
			}
			i = j
			continue
		}
		c := s[i]
		inArray := len(stack) > 0 && stack[len(stack)-1] == '['
		valuePos := prev == ':' || inArray && (prev == '[' || prev == ',')
		if valuePos && isLetter(c) {
			if n, ok := bareWord(s, i); ok {
				word := strings.TrimRight(s[i:n], " \t")
				b.WriteByte('"')
				b.WriteString(strings.ReplaceAll(word, `\`, `\\`))
				b.WriteByte('"')
				b.WriteString(s[i+len(word) : n])
				prev = '"'
				i = n
				continue
			}
		}
		switch c {
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
		b.WriteByte(c)
		if !isSpace(c) {
			prev = c
		}
		i++
	}
	return b.String()
}

// bareWord returns the end of the bare word starting at i, stopping before
// a , } ] or line break. It reports false for keywords and for runs that
// contain JSON structure.
func bareWord(s string, i int) (int, bool) {
	n := i
	for n < len(s) && !strings.ContainsRune(",}]\r\n", rune(s[n])) {
		if strings.ContainsRune(`"':{[/`, rune(s[n])) {
			return 0, false
		}
		n++
	}
	word := strings.TrimRight(s[i:n], " \t")
	if bareKeywords[word] {
		return 0, false
	}
	return n, true
}

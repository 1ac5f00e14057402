package scan

import "strings"

// Kind tags a span as prose or as a JSON candidate.
type Kind int

const (
	// Text is prose that surrounds JSON candidates.
	Text Kind = iota
	// Candidate is a bracket- or fence-delimited region that may hold one JSON value.
	Candidate
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Candidate:
		return "candidate"
	default:
		return "unknown"
	}
}

// Span is a contiguous region of the scanned input.
type Span struct {
	Kind  Kind
	Start int // byte offset of the first byte
	End   int // byte offset one past the last byte
	// Raw is input[Start:End].
	Raw string
	// Body is the JSON-bearing part of a candidate. It equals Raw for bracket
	// candidates and holds the fence content (markers excluded) for fenced ones.
	// Empty for text spans.
	Body string
	// Fenced reports that the candidate came from a markdown code fence.
	Fenced bool
	// Truncated reports that the candidate reached end of input before its
	// brackets balanced or its fence closed.
	Truncated bool
}

const fenceMarker = "```"

// jsonFenceTags lists the code fence language tags whose content is treated
// as a single JSON candidate. Fences with any other tag are prose.
var jsonFenceTags = map[string]bool{
	"":           true,
	"json":       true,
	"jsonc":      true,
	"json5":      true,
	"javascript": true,
	"js":         true,
}

// Scan splits text into ordered, gap-free, non-overlapping spans.
func Scan(text string) []Span {
	return ScanAt(text, 0)
}

// ScanAt scans text starting at byte offset from. Offsets in the returned
// spans are absolute; the first span starts at from.
func ScanAt(text string, from int) []Span {
	if from < 0 {
		from = 0
	}
	s := &scanner{text: text, textStart: from}
	s.run(from)
	return s.spans
}

type scanner struct {
	text      string
	spans     []Span
	textStart int
}

func (s *scanner) run(i int) {
	n := len(s.text)
	for i < n {
		if i == 0 || s.text[i-1] == '\n' {
			if next, ok := s.fence(i); ok {
				i = next
				continue
			}
		}
		switch s.text[i] {
		case '{', '[':
			i = s.bracket(i)
		default:
			i++
		}
	}
	s.flushText(n)
}

// bracket consumes a bracket candidate starting at start and returns the
// offset right after it. Brackets inside double-quoted strings are ignored.
func (s *scanner) bracket(start int) int {
	depth := 0
	inString, escaped := false, false
	for j := start; j < len(s.text); j++ {
		c := s.text[j]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				s.emit(Span{Start: start, End: j + 1})
				return j + 1
			}
		}
	}
	s.emit(Span{Start: start, End: len(s.text), Truncated: true})
	return len(s.text)
}

// fence recognises a code fence opening at line start i. It returns the
// offset after the fence and true when a fence was consumed, either as a
// candidate or as prose.
func (s *scanner) fence(i int) (int, bool) {
	tag, bodyStart, ok := fenceOpen(s.text, i)
	if !ok {
		return 0, false
	}

	n := len(s.text)
	bodyEnd, end, closed := n, n, false
	for pos := bodyStart; pos < n; {
		lineEnd := strings.IndexByte(s.text[pos:], '\n')
		if lineEnd < 0 {
			lineEnd = n
		} else {
			lineEnd += pos
		}
		if strings.TrimSpace(s.text[pos:lineEnd]) == fenceMarker {
			bodyEnd, end, closed = pos, lineEnd, true
			break
		}
		pos = lineEnd + 1
	}

	body := strings.TrimSpace(s.text[bodyStart:bodyEnd])
	if !jsonFenceTags[strings.ToLower(tag)] || body == "" {
		// Stays in the pending text run.
		return end, true
	}
	s.emit(Span{Start: i, End: end, Body: body, Fenced: true, Truncated: !closed})
	return end, true
}

// fenceOpen parses a fence opening line at i: optional horizontal
// whitespace, three backticks and an optional language tag. It returns the
// tag and the offset of the first content byte.
func fenceOpen(text string, i int) (string, int, bool) {
	j := i
	for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
		j++
	}
	if !strings.HasPrefix(text[j:], fenceMarker) {
		return "", 0, false
	}
	j += len(fenceMarker)

	lineEnd := strings.IndexByte(text[j:], '\n')
	next := len(text)
	if lineEnd < 0 {
		lineEnd = len(text)
	} else {
		lineEnd += j
		next = lineEnd + 1
	}
	tag := strings.TrimSpace(text[j:lineEnd])
	if strings.ContainsAny(tag, "` \t{[") {
		return "", 0, false
	}
	return tag, next, true
}

func (s *scanner) emit(c Span) {
	s.flushText(c.Start)
	c.Kind = Candidate
	c.Raw = s.text[c.Start:c.End]
	if !c.Fenced {
		c.Body = c.Raw
	}
	s.spans = append(s.spans, c)
	s.textStart = c.End
}

func (s *scanner) flushText(upto int) {
	if upto <= s.textStart {
		return
	}
	s.spans = append(s.spans, Span{
		Kind:  Text,
		Start: s.textStart,
		End:   upto,
		Raw:   s.text[s.textStart:upto],
	})
	s.textStart = upto
}

// Join concatenates the raw text of spans in order.
func Join(spans []Span) string {
	var b strings.Builder
	for _, sp := range spans {
		b.WriteString(sp.Raw)
	}
	return b.String()
}

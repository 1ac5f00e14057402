package extract

import (
	"context"
	"strings"

	"github.com/leofalp/llmjson/core/correct"
	"github.com/leofalp/llmjson/core/scan"
)

// Recovered is one span of the input together with what could be recovered
// from it. Text spans and unrecoverable candidates have OK false.
type Recovered struct {
	scan.Span
	// Value is the decoded JSON value when OK is true.
	Value any
	OK    bool
	// WasCorrected reports that Value needed correction.
	WasCorrected bool
	// Rules lists the correction rules applied, in order.
	Rules []string
}

// Recover returns every span of text with its recovered value, if any.
// The spans are ordered, contiguous and cover the whole input; adjacent
// text spans are merged.
func (e *Engine) Recover(text string) []Recovered {
	return e.recover(context.Background(), text)
}

func (e *Engine) recover(ctx context.Context, text string) []Recovered {
	return e.recoverFrom(ctx, text, 0, nil)
}

// recoverFrom scans text from offset from and appends the recovered spans to
// out. text may be a prefix of the input; offsets stay absolute.
//
// Once a truncated candidate fails, every later truncated candidate found in
// its rescan runs to the same end of input and is a suffix of it. Those are
// only parsed strictly, so each call runs the correction rules on at most one
// truncated suffix.
func (e *Engine) recoverFrom(ctx context.Context, text string, from int, out []Recovered) []Recovered {
	inTail := false
rescan:
	for {
		for _, sp := range scan.ScanAt(text, from) {
			if sp.Kind == scan.Text {
				out = appendText(out, text, sp.Start, sp.End)
				continue
			}

			outcome := e.attempt(ctx, sp, inTail && sp.Truncated && !sp.Fenced)
			if outcome.OK {
				out = append(out, Recovered{
					Span:         sp,
					Value:        outcome.Value,
					OK:           true,
					WasCorrected: outcome.Corrected,
					Rules:        outcome.Rules,
				})
				continue
			}

			switch {
			case sp.Fenced:
				// Look for bracketed values inside the fence instead.
				bodyStart := fenceBodyStart(sp)
				bodyEnd := bodyStart + len(sp.Body)
				e.noteRescan(ctx, sp)
				out = appendText(out, text, sp.Start, bodyStart)
				out = e.recoverFrom(ctx, text[:bodyEnd], bodyStart, out)
				out = appendText(out, text, bodyEnd, sp.End)
			case sp.Truncated:
				// Give up the opening bracket only and scan the rest again.
				e.noteRescan(ctx, sp)
				out = appendText(out, text, sp.Start, sp.Start+1)
				from, inTail = sp.Start+1, true
				continue rescan
			default:
				out = append(out, Recovered{Span: sp})
			}
		}
		return out
	}
}

func (e *Engine) attempt(ctx context.Context, sp scan.Span, strictOnly bool) correct.Outcome {
	var outcome correct.Outcome
	if e.correction && !strictOnly {
		outcome = e.corrector.Correct(sp.Body)
	} else {
		outcome = e.corrector.Parse(sp.Body)
	}
	e.noteCandidate(ctx, sp, outcome)
	return outcome
}

// fenceBodyStart returns the absolute offset of a fenced candidate's body.
func fenceBodyStart(sp scan.Span) int {
	nl := strings.IndexByte(sp.Raw, '\n') + 1
	return sp.Start + nl + strings.Index(sp.Raw[nl:], sp.Body)
}

// appendText appends text[start:end] as a text span, merging it into a
// preceding text span.
func appendText(out []Recovered, text string, start, end int) []Recovered {
	if start >= end {
		return out
	}
	if n := len(out); n > 0 && out[n-1].Kind == scan.Text && out[n-1].End == start {
		out[n-1].End = end
		out[n-1].Raw = text[out[n-1].Start:end]
		return out
	}
	return append(out, Recovered{Span: scan.Span{
		Kind:  scan.Text,
		Start: start,
		End:   end,
		Raw:   text[start:end],
	}})
}

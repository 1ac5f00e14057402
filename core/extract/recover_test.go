package extract

import (
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leofalp/llmjson/core/correct"
	"github.com/leofalp/llmjson/core/scan"
)

func TestRecoverCoversInput(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		`a {"x": 1} b [1, 2] c`,
		"{broken",
		"[[[",
		`x {"a": [1, 2 y {"b": 3} z`,
		"```json\n{\"a\": 1}\n{\"b\": 2}\n```\ntail",
		"```json\n{\"open\": ",
		`}{ ]][ "quoted { brace" {"s": "}"}`,
	}
	for _, correction := range []bool{true, false} {
		e := mustEngine(t, WithCorrection(correction))
		for _, input := range inputs {
			recs := e.Recover(input)

			next := 0
			var joined string
			for i, r := range recs {
				if r.Start != next {
					t.Fatalf("Recover(%q) span %d starts at %d, want %d", input, i, r.Start, next)
				}
				if r.End <= r.Start || r.Raw != input[r.Start:r.End] {
					t.Fatalf("Recover(%q) span %d = [%d,%d) %q, inconsistent", input, i, r.Start, r.End, r.Raw)
				}
				if i > 0 && r.Kind == scan.Text && recs[i-1].Kind == scan.Text {
					t.Errorf("Recover(%q) spans %d and %d are unmerged text", input, i-1, i)
				}
				next = r.End
				joined += r.Raw
			}
			if joined != input {
				t.Errorf("Recover(%q) joined = %q", input, joined)
			}
		}
	}
}

func TestRecoverDetails(t *testing.T) {
	e := mustEngine(t)
	recs := e.Recover(`a {"x": 1} b {y: 2} c {this is prose} d`)

	type view struct {
		Kind         scan.Kind
		Raw          string
		OK           bool
		WasCorrected bool
		Rules        []string
	}
	var got []view
	for _, r := range recs {
		got = append(got, view{r.Kind, r.Raw, r.OK, r.WasCorrected, r.Rules})
	}
	want := []view{
		{Kind: scan.Text, Raw: "a "},
		{Kind: scan.Candidate, Raw: `{"x": 1}`, OK: true},
		{Kind: scan.Text, Raw: " b "},
		{Kind: scan.Candidate, Raw: `{y: 2}`, OK: true, WasCorrected: true, Rules: []string{correct.RuleUnquotedKeys}},
		{Kind: scan.Text, Raw: " c "},
		{Kind: scan.Candidate, Raw: `{this is prose}`},
		{Kind: scan.Text, Raw: " d"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Recover() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"y": 2.0}, recs[3].Value); diff != "" {
		t.Errorf("corrected value mismatch (-want +got):\n%s", diff)
	}
}

func TestRecoverIsIdempotent(t *testing.T) {
	e := mustEngine(t)
	input := `{name: 'Ann', tags: ['a',,'b',], ok: True} // done`
	first := e.Recover(input)
	second := e.Recover(input)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Recover() not deterministic (-first +second):\n%s", diff)
	}
}

func TestFenceBodyStart(t *testing.T) {
	input := "x\n```json\njson\n```"
	spans := scan.Scan(input)
	if len(spans) != 2 {
		t.Fatalf("Scan() = %d spans, want 2", len(spans))
	}
	sp := spans[1]
	start := fenceBodyStart(sp)
	if got := input[start : start+len(sp.Body)]; got != "json" || start != 10 {
		t.Errorf("fenceBodyStart() = %d (%q), want 10", start, got)
	}
}

type countingFixer struct {
	fixer
	corrects, parses atomic.Int64
}

func (c *countingFixer) Correct(text string) correct.Outcome {
	c.corrects.Add(1)
	return c.fixer.Correct(text)
}

func (c *countingFixer) Parse(text string) correct.Outcome {
	c.parses.Add(1)
	return c.fixer.Parse(text)
}

func TestRecoverCorrectsOneTruncatedSuffix(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"stray braces", strings.Repeat("{ a", 4000)},
		{"stray brackets", strings.Repeat("[x ", 4000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mustEngine(t)
			counter := &countingFixer{fixer: e.corrector}
			e.corrector = counter

			recs := e.Recover(tt.input)

			if got := counter.corrects.Load(); got != 1 {
				t.Errorf("Correct() called %d times, want 1", got)
			}
			if got, limit := counter.parses.Load(), int64(strings.Count(tt.input, tt.input[:1])); got > limit {
				t.Errorf("Parse() called %d times, want at most %d", got, limit)
			}
			var joined strings.Builder
			for _, r := range recs {
				joined.WriteString(r.Raw)
			}
			if joined.String() != tt.input {
				t.Errorf("Recover() spans do not cover the input")
			}
		})
	}
}

func TestRecoverKeepsValueAfterStrayOpeners(t *testing.T) {
	input := strings.Repeat("{ a", 50) + ` {"ok": true}`
	got := mustEngine(t).Extract(input)
	if diff := cmp.Diff([]any{map[string]any{"ok": true}}, got.JSON); diff != "" {
		t.Errorf("Extract() JSON mismatch (-want +got):\n%s", diff)
	}
}

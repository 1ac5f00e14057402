package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/leofalp/llmjson/core/correct"
	"github.com/leofalp/llmjson/core/parse"
	"github.com/leofalp/llmjson/core/schema"
	"github.com/leofalp/llmjson/internal/utils"
	"github.com/leofalp/llmjson/providers/observability"
)

// Result is the outcome of one extraction.
type Result struct {
	// Text holds the prose between values, in input order. Whitespace-only
	// fragments are omitted.
	Text []string `json:"text"`
	// JSON holds the recovered values in input order.
	JSON []any `json:"json"`
	// Validated holds one classification per JSON entry. It is nil when the
	// engine has no schemas.
	Validated []schema.ValidationResult `json:"validated_json,omitempty"`
}

// Engine extracts JSON values from text.
type Engine struct {
	correction bool
	corrector  fixer
	matcher    *schema.Matcher
	observer   observability.Provider
}

// fixer recovers a value from candidate text. *correct.Corrector is the
// only implementation outside tests.
type fixer interface {
	Correct(text string) correct.Outcome
	Parse(text string) correct.Outcome
}

// New builds an engine. It fails only when a schema definition is invalid.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	correctorOpts := []correct.Option{correct.WithRepairFallback(cfg.fallback)}
	if cfg.rules != nil {
		correctorOpts = append(correctorOpts, correct.WithRules(cfg.rules...))
	}

	e := &Engine{
		correction: cfg.correction,
		corrector:  correct.New(correctorOpts...),
		observer:   cfg.observer,
	}

	if len(cfg.schemas) > 0 {
		m, err := schema.NewMatcher(cfg.schemas...)
		if err != nil {
			return nil, fmt.Errorf("extract: %w", err)
		}
		e.matcher = m
	}
	return e, nil
}

// Correction reports whether the engine corrects malformed candidates.
func (e *Engine) Correction() bool {
	return e.correction
}

// Extract returns the JSON objects found in text. Arrays and other
// non-object values are kept as text.
func (e *Engine) Extract(text string) *Result {
	return e.ExtractContext(context.Background(), text)
}

// ExtractAll returns the JSON objects and arrays found in text.
func (e *Engine) ExtractAll(text string) *Result {
	return e.ExtractAllContext(context.Background(), text)
}

// ExtractContext is Extract with a context for tracing.
func (e *Engine) ExtractContext(ctx context.Context, text string) *Result {
	return e.run(ctx, text, false)
}

// ExtractAllContext is ExtractAll with a context for tracing.
func (e *Engine) ExtractAllContext(ctx context.Context, text string) *Result {
	return e.run(ctx, text, true)
}

func (e *Engine) run(ctx context.Context, text string, all bool) *Result {
	ctx, finish := e.startExtract(ctx, text, all)
	timer := utils.NewTimer()

	res := e.assemble(e.recover(ctx, text), all)
	if e.matcher != nil {
		res.Validated = e.matcher.MatchAll(res.JSON)
		e.noteMatches(ctx, res.Validated)
	}

	finish(res, timer.Stop())
	return res
}

// assemble folds recovered spans into a Result. Values that the mode does not
// accept join the surrounding text.
func (e *Engine) assemble(recs []Recovered, all bool) *Result {
	res := &Result{Text: []string{}, JSON: []any{}}

	var pending strings.Builder
	flush := func() {
		if fragment := pending.String(); strings.TrimSpace(fragment) != "" {
			res.Text = append(res.Text, fragment)
		}
		pending.Reset()
	}

	for _, r := range recs {
		if r.OK && (all || parse.IsObject(r.Value)) {
			flush()
			res.JSON = append(res.JSON, r.Value)
			continue
		}
		pending.WriteString(r.Raw)
	}
	flush()
	return res
}

package extract

import (
	"context"
	"time"

	"github.com/leofalp/llmjson/core/correct"
	"github.com/leofalp/llmjson/core/scan"
	"github.com/leofalp/llmjson/core/schema"
	"github.com/leofalp/llmjson/internal/utils"
	"github.com/leofalp/llmjson/providers/observability"
)

const snippetLength = 80

func modeName(all bool) string {
	if all {
		return "all"
	}
	return "objects"
}

// startExtract opens the extraction span. The returned function records the
// result and closes it.
func (e *Engine) startExtract(ctx context.Context, text string, all bool) (context.Context, func(*Result, time.Duration)) {
	if e.observer == nil {
		return ctx, func(*Result, time.Duration) {}
	}

	mode := observability.String(observability.AttrMode, modeName(all))
	ctx, span := e.observer.StartSpan(ctx, observability.SpanExtract,
		mode,
		observability.Int(observability.AttrInputLength, len(text)),
		observability.Bool(observability.AttrCorrection, e.correction),
	)
	ctx = observability.ContextWithSpan(ctx, span)

	return ctx, func(res *Result, elapsed time.Duration) {
		defer span.End()

		e.observer.Histogram(observability.MetricExtractDuration).Record(ctx, elapsed.Seconds(), mode)
		span.SetAttributes(
			observability.Int(observability.AttrTextFragments, len(res.Text)),
			observability.Int(observability.AttrValues, len(res.JSON)),
		)
		span.SetStatus(observability.StatusOK, "")
		e.observer.Debug(ctx, "extraction finished",
			mode,
			observability.Int(observability.AttrValues, len(res.JSON)),
			observability.Int(observability.AttrTextFragments, len(res.Text)),
			observability.Duration(observability.AttrDuration, elapsed),
		)
	}
}

func candidateAttrs(sp scan.Span) []observability.Attribute {
	return []observability.Attribute{
		observability.Int(observability.AttrCandidateStart, sp.Start),
		observability.Int(observability.AttrCandidateEnd, sp.End),
		observability.Bool(observability.AttrCandidateFenced, sp.Fenced),
		observability.Bool(observability.AttrCandidateTruncated, sp.Truncated),
	}
}

func (e *Engine) noteCandidate(ctx context.Context, sp scan.Span, outcome correct.Outcome) {
	if e.observer == nil {
		return
	}
	e.observer.Counter(observability.MetricCandidates).Add(ctx, 1)

	switch {
	case outcome.OK && outcome.Corrected:
		attrs := append(candidateAttrs(sp), observability.Strings(observability.AttrCorrectionRules, outcome.Rules))
		e.observer.Counter(observability.MetricCandidatesCorrected).Add(ctx, 1)
		observability.AddEvent(ctx, observability.EventCandidateCorrected, attrs...)
		e.observer.Debug(ctx, "candidate corrected",
			append(attrs, observability.String(observability.AttrCandidateSnippet, utils.Snippet(sp.Body, snippetLength)))...)
	case !outcome.OK:
		attrs := append(candidateAttrs(sp), observability.Error(outcome.ParseErr))
		e.observer.Counter(observability.MetricCandidatesUnrecoverable).Add(ctx, 1)
		observability.AddEvent(ctx, observability.EventCandidateUnrecoverable, attrs...)
		e.observer.Debug(ctx, "candidate unrecoverable",
			append(attrs, observability.String(observability.AttrCandidateSnippet, utils.Snippet(sp.Body, snippetLength)))...)
	default:
		e.observer.Trace(ctx, "candidate parsed", candidateAttrs(sp)...)
	}
}

func (e *Engine) noteRescan(ctx context.Context, sp scan.Span) {
	if e.observer == nil {
		return
	}
	observability.AddEvent(ctx, observability.EventCandidateRescanned, candidateAttrs(sp)...)
}

func (e *Engine) noteMatches(ctx context.Context, results []schema.ValidationResult) {
	if e.observer == nil {
		return
	}
	for _, r := range results {
		if r.MatchedSchema == "" {
			continue
		}
		e.observer.Counter(observability.MetricSchemaMatched).Add(ctx, 1,
			observability.String(observability.AttrSchemaName, r.MatchedSchema),
			observability.Bool(observability.AttrSchemaValid, r.IsValid),
		)
	}
}

package observability

import (
	"context"
	"testing"
)

type recordingSpan struct {
	events []string
}

func (s *recordingSpan) End()                                          {}
func (s *recordingSpan) SetAttributes(attrs ...Attribute)              {}
func (s *recordingSpan) SetStatus(code StatusCode, description string) {}
func (s *recordingSpan) RecordError(err error)                         {}
func (s *recordingSpan) AddEvent(name string, attrs ...Attribute) {
	s.events = append(s.events, name)
}

type testContextKey string

func TestSpanContextRoundTrip(t *testing.T) {
	span := &recordingSpan{}
	ctx := ContextWithSpan(context.Background(), span)
	ctx = context.WithValue(ctx, testContextKey("other"), "value")

	if got := SpanFromContext(ctx); got != span {
		t.Errorf("SpanFromContext() = %v, want %v", got, span)
	}
}

func TestSpanFromContextEmpty(t *testing.T) {
	//nolint:staticcheck // nil context is handled explicitly
	if got := SpanFromContext(nil); got != nil {
		t.Errorf("SpanFromContext(nil) = %v, want nil", got)
	}
	if got := SpanFromContext(context.Background()); got != nil {
		t.Errorf("SpanFromContext(empty) = %v, want nil", got)
	}
	ctx := context.WithValue(context.Background(), spanContextKey, "not a span")
	if got := SpanFromContext(ctx); got != nil {
		t.Errorf("SpanFromContext(wrong type) = %v, want nil", got)
	}
}

func TestContextWithSpanNilParent(t *testing.T) {
	span := &recordingSpan{}
	//nolint:staticcheck // nil context is handled explicitly
	ctx := ContextWithSpan(nil, span)
	if got := SpanFromContext(ctx); got != span {
		t.Errorf("SpanFromContext() = %v, want %v", got, span)
	}
}

func TestAddEvent(t *testing.T) {
	span := &recordingSpan{}
	ctx := ContextWithSpan(context.Background(), span)

	AddEvent(ctx, EventCandidateCorrected, Int(AttrCandidateStart, 4))
	AddEvent(context.Background(), EventCandidateUnrecoverable)

	if len(span.events) != 1 || span.events[0] != EventCandidateCorrected {
		t.Errorf("events = %v, want [%s]", span.events, EventCandidateCorrected)
	}
}

// Package observability defines the tracing, metrics and logging interfaces
// used by the extraction engine, plus the attribute keys, span names and
// metric names it records.
//
// [Provider] composes [Tracer], [Metrics] and [Logger] into one injectable
// dependency. The engine opens one span per extraction and passes it down
// through the context with [ContextWithSpan]; helpers deeper in the call
// retrieve it with [SpanFromContext] to attach events.
//
// The default backend lives in the slogobs subpackage.
package observability

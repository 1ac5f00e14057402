// Package slogobs implements observability.Provider on top of log/slog.
//
// Spans, events and metric updates are written as debug records, so a
// default observer at INFO level stays quiet during normal extraction.
// Counter totals and histogram summaries are also kept in memory and can be
// read back with [Observer.CounterValue] and [Observer.HistogramStats].
//
// Format and level default to LLMJSON_LOG_FORMAT and LLMJSON_LOG_LEVEL.
package slogobs

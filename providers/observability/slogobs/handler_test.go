package slogobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestHandler_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(FormatText, slog.LevelDebug, &buf))
	logger.Info("Test message", "key1", "value1", "key2", 42)

	output := buf.String()
	for _, want := range []string{"level=INFO", `msg="Test message"`, "key1=value1", "key2=42"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}

func TestHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(FormatJSON, slog.LevelDebug, &buf))
	logger.Warn("careful", "count", 3)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %q: %v", buf.String(), err)
	}
	if record["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", record["level"])
	}
	if record["msg"] != "careful" {
		t.Errorf("msg = %v, want careful", record["msg"])
	}
	if record["count"] != 3.0 {
		t.Errorf("count = %v, want 3", record["count"])
	}
}

func TestHandler_TraceLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(FormatText, LevelTrace, &buf))
	logger.Log(context.Background(), LevelTrace, "deep")

	if !strings.Contains(buf.String(), "level=TRACE") {
		t.Errorf("Expected TRACE label, got: %s", buf.String())
	}
}

func TestHandler_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(FormatText, slog.LevelWarn, &buf))
	logger.Info("hidden")
	logger.Debug("hidden too")

	if buf.Len() != 0 {
		t.Errorf("Expected no output below WARN, got: %s", buf.String())
	}
}

func TestHandler_Compact(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(FormatCompact, slog.LevelDebug, &buf))
	logger.Info("Test message", "key1", "value1", "key2", 42)

	output := buf.String()
	if strings.Count(output, "\n") != 1 {
		t.Errorf("Expected a single line, got: %q", output)
	}
	for _, want := range []string{" INFO Test message → ", `"key1":"value1"`, `"key2":42`} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
	if strings.Contains(output, "\033[") {
		t.Errorf("Expected no colors for a buffer, got: %q", output)
	}
}

func TestHandler_CompactNoAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(FormatCompact, slog.LevelDebug, &buf))
	logger.Warn("bare")

	if !strings.HasSuffix(buf.String(), " WARN bare\n") {
		t.Errorf("Expected bare message line, got: %q", buf.String())
	}
}

func TestHandler_CompactGroupsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(FormatCompact, LevelTrace, &buf)).
		With("engine", "default").
		WithGroup("candidate")
	logger.Log(context.Background(), LevelTrace, "unrecoverable",
		"start", 4,
		"error", errors.New("bad token"),
		slog.Group("span", "fenced", true),
	)

	output := buf.String()
	for _, want := range []string{
		"TRACE unrecoverable",
		`"engine":"default"`,
		`"candidate.start":4`,
		`"candidate.error":"bad token"`,
		`"candidate.span.fenced":true`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}

func TestHandler_CompactFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(FormatCompact, slog.LevelInfo, &buf))
	logger.Debug("hidden")

	if buf.Len() != 0 {
		t.Errorf("Expected no output below INFO, got: %s", buf.String())
	}
}

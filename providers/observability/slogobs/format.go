package slogobs

import (
	"fmt"
	"os"
	"strings"
)

// Format is the log output format.
type Format string

const (
	// FormatCompact writes one line per record with JSON attributes. It is
	// the default.
	// Example: 2026-10-18 10:40:35 DEBUG candidate corrected → {"llmjson.candidate.start":4}
	FormatCompact Format = "compact"

	// FormatText writes logfmt-style key=value lines.
	FormatText Format = "text"

	// FormatJSON writes one JSON object per record.
	FormatJSON Format = "json"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "compact", "":
		return FormatCompact, nil
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatCompact, fmt.Errorf("unknown log format %q", s)
	}
}

// FormatFromEnv reads LLMJSON_LOG_FORMAT, falling back to LOG_FORMAT.
// Missing or unknown values yield FormatCompact.
func FormatFromEnv() Format {
	value := os.Getenv("LLMJSON_LOG_FORMAT")
	if value == "" {
		value = os.Getenv("LOG_FORMAT")
	}
	format, err := ParseFormat(value)
	if err != nil {
		return FormatCompact
	}
	return format
}

func (f Format) String() string {
	return string(f)
}

package slogobs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace sits below debug and is used for per-rule correction detail.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel parses TRACE, DEBUG, INFO, WARN, WARNING or ERROR,
// case-insensitively. An empty string is INFO.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// LevelFromEnv reads LLMJSON_LOG_LEVEL, falling back to LOG_LEVEL.
// Missing or unknown values yield INFO.
func LevelFromEnv() slog.Level {
	value := os.Getenv("LLMJSON_LOG_LEVEL")
	if value == "" {
		value = os.Getenv("LOG_LEVEL")
	}
	level, err := ParseLevel(value)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// LevelName returns the display name of level.
func LevelName(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return "TRACE"
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

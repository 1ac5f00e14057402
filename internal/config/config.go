// Package config reads engine and logging settings from the environment and
// optional .env files.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/leofalp/llmjson/core/extract"
	"github.com/leofalp/llmjson/core/schema"
	"github.com/leofalp/llmjson/providers/observability/slogobs"
)

// Environment variables read by FromEnv.
const (
	EnvAttemptCorrection = "LLMJSON_ATTEMPT_CORRECTION"
	EnvRepairFallback    = "LLMJSON_REPAIR_FALLBACK"
	EnvSchemaDir         = "LLMJSON_SCHEMA_DIR"
	EnvLogLevel          = "LLMJSON_LOG_LEVEL"
	EnvLogFormat         = "LLMJSON_LOG_FORMAT"

	// envLogLevelFallback is consulted when EnvLogLevel is unset.
	envLogLevelFallback = "LOG_LEVEL"
)

// DefaultEnvFile is loaded by Load when no files are named.
const DefaultEnvFile = ".env"

// Config holds resolved settings.
type Config struct {
	Correction     bool
	RepairFallback bool
	// SchemaDir, when set, is a directory of schema definition files.
	SchemaDir string
	LogLevel  slog.Level
	LogFormat slogobs.Format
}

// Load reads the named .env files, or DefaultEnvFile when none are named,
// into the process environment and then calls FromEnv. Missing files are
// skipped; variables already set in the environment win over file values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}

	var existing []string
	for _, f := range files {
		_, err := os.Stat(f)
		switch {
		case err == nil:
			existing = append(existing, f)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return nil, fmt.Errorf("config: load env files: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv resolves settings from environment variables. Unset variables take
// their defaults: correction on, repair fallback off, no schema directory,
// INFO level and compact format.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Correction: true,
		SchemaDir:  os.Getenv(EnvSchemaDir),
		LogLevel:   slog.LevelInfo,
		LogFormat:  slogobs.FormatCompact,
	}

	var err error
	if cfg.Correction, err = boolEnv(EnvAttemptCorrection, true); err != nil {
		return nil, err
	}
	if cfg.RepairFallback, err = boolEnv(EnvRepairFallback, false); err != nil {
		return nil, err
	}

	level := os.Getenv(EnvLogLevel)
	if level == "" {
		level = os.Getenv(envLogLevelFallback)
	}
	if cfg.LogLevel, err = slogobs.ParseLevel(level); err != nil {
		return nil, fmt.Errorf("config: %s: %w", EnvLogLevel, err)
	}
	if cfg.LogFormat, err = slogobs.ParseFormat(os.Getenv(EnvLogFormat)); err != nil {
		return nil, fmt.Errorf("config: %s: %w", EnvLogFormat, err)
	}
	return cfg, nil
}

func boolEnv(key string, def bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return def, fmt.Errorf("config: %s: invalid boolean %q", key, value)
	}
	return b, nil
}

// Schemas loads the definitions in SchemaDir. It returns nil when no
// directory is configured.
func (c *Config) Schemas() ([]schema.Def, error) {
	if c.SchemaDir == "" {
		return nil, nil
	}
	info, err := os.Stat(c.SchemaDir)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", EnvSchemaDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("config: %s: %s is not a directory", EnvSchemaDir, c.SchemaDir)
	}
	defs, err := schema.LoadFS(os.DirFS(c.SchemaDir))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return defs, nil
}

// Observer builds a slog observer writing to output with the configured
// level and format.
func (c *Config) Observer(output io.Writer) *slogobs.Observer {
	return slogobs.New(
		slogobs.WithLevel(c.LogLevel),
		slogobs.WithFormat(c.LogFormat),
		slogobs.WithOutput(output),
	)
}

// EngineOptions translates the settings into engine options. Schema files
// are read here, so a bad definition surfaces as an error.
func (c *Config) EngineOptions() ([]extract.Option, error) {
	opts := []extract.Option{
		extract.WithCorrection(c.Correction),
		extract.WithRepairFallback(c.RepairFallback),
	}
	defs, err := c.Schemas()
	if err != nil {
		return nil, err
	}
	if len(defs) > 0 {
		opts = append(opts, extract.WithSchemas(defs...))
	}
	return opts, nil
}

package llmjson

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/leofalp/llmjson/core/extract"
	"github.com/leofalp/llmjson/core/parse"
	"github.com/leofalp/llmjson/core/schema"
)

type (
	// Engine extracts JSON values from text. See extract.Engine.
	Engine = extract.Engine
	// Option configures an Engine.
	Option = extract.Option
	// Result is the outcome of one extraction.
	Result = extract.Result
	// SchemaDef is a named schema used to classify objects.
	SchemaDef = schema.Def
	// ValidationResult is the classification of one value.
	ValidationResult = schema.ValidationResult
)

// Engine options.
var (
	WithCorrection     = extract.WithCorrection
	WithRepairFallback = extract.WithRepairFallback
	WithSchemas        = extract.WithSchemas
	WithObserver       = extract.WithObserver
	WithRules          = extract.WithRules
)

// ErrNoJSON is returned by the typed helpers when the text holds no JSON value.
var ErrNoJSON = errors.New("llmjson: no JSON value found")

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the shared engine with default settings: correction on,
// no repair fallback, no schemas, no observer. It is built on first use.
func Default() *Engine {
	defaultOnce.Do(func() {
		e, err := extract.New()
		if err != nil {
			// Unreachable: only schema definitions can fail.
			panic(fmt.Sprintf("llmjson: default engine: %v", err))
		}
		defaultEngine = e
	})
	return defaultEngine
}

// New builds an engine with its own settings.
func New(opts ...Option) (*Engine, error) {
	return extract.New(opts...)
}

// Extract returns the JSON objects in text using the default engine.
func Extract(text string) *Result {
	return Default().Extract(text)
}

// ExtractAll returns the JSON objects and arrays in text using the default
// engine.
func ExtractAll(text string) *Result {
	return Default().ExtractAll(text)
}

// ExtractAs extracts every JSON value in text with the default engine and
// decodes the ones that fit T.
func ExtractAs[T any](text string) ([]T, error) {
	return DecodeAll[T](ExtractAll(text))
}

// DecodeAll decodes the values of res into T, skipping those that do not
// fit. It fails with ErrNoJSON when res holds no value, and with the
// decoding errors when no value fits.
func DecodeAll[T any](res *Result) ([]T, error) {
	if res == nil || len(res.JSON) == 0 {
		return nil, ErrNoJSON
	}

	var (
		out  []T
		errs []error
	)
	for i, v := range res.JSON {
		decoded, err := parse.DecodeAs[T](v)
		if err != nil {
			errs = append(errs, fmt.Errorf("value %d: %w", i, err))
			continue
		}
		out = append(out, decoded)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("llmjson: %w", errors.Join(errs...))
	}
	return out, nil
}

// SchemaFor builds a schema definition named name from the Go type T.
func SchemaFor[T any](name string) (SchemaDef, error) {
	return schema.DefFor[T](name)
}

// LoadSchemas reads the .json, .yaml and .yml definition files in dir.
func LoadSchemas(dir string) ([]SchemaDef, error) {
	return schema.LoadFS(os.DirFS(dir))
}

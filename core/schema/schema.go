package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/leofalp/llmjson/pkg/jsonschema"
)

// ErrInvalidDef is returned when a schema definition cannot be used.
var ErrInvalidDef = errors.New("schema: invalid definition")

// Def is a named schema. Names must be non-empty and unique within a Matcher.
type Def struct {
	Name   string             `json:"name" yaml:"name"`
	Schema *jsonschema.Schema `json:"schema" yaml:"schema"`
}

// ValidationResult is the classification of one recovered value.
// MatchedSchema is empty when no definition was selected.
type ValidationResult struct {
	JSON             any      `json:"json"`
	MatchedSchema    string   `json:"matched_schema"`
	IsValid          bool     `json:"is_valid"`
	ValidationErrors []string `json:"validation_errors,omitempty"`
}

// MarshalJSON encodes an empty MatchedSchema as null.
func (r ValidationResult) MarshalJSON() ([]byte, error) {
	var matched *string
	if r.MatchedSchema != "" {
		matched = &r.MatchedSchema
	}
	return json.Marshal(struct {
		JSON             any      `json:"json"`
		MatchedSchema    *string  `json:"matched_schema"`
		IsValid          bool     `json:"is_valid"`
		ValidationErrors []string `json:"validation_errors,omitempty"`
	}{r.JSON, matched, r.IsValid, r.ValidationErrors})
}

type compiled struct {
	name     string
	required []string
	objects  bool
	schema   *openapi3.Schema
}

// Matcher selects and validates schemas for recovered values.
// It is immutable and safe for concurrent use.
type Matcher struct {
	defs []compiled
}

// NewMatcher compiles defs in order. It fails with ErrInvalidDef when a name is
// empty or repeated, a schema is nil, or a schema is not well formed.
func NewMatcher(defs ...Def) (*Matcher, error) {
	m := &Matcher{defs: make([]compiled, 0, len(defs))}
	seen := make(map[string]bool, len(defs))

	for i, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("%w: definition %d has no name", ErrInvalidDef, i)
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidDef, def.Name)
		}
		seen[def.Name] = true
		if def.Schema == nil {
			return nil, fmt.Errorf("%w: %q has no schema", ErrInvalidDef, def.Name)
		}

		s, err := compile(def.Schema)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidDef, def.Name, err)
		}
		m.defs = append(m.defs, compiled{
			name:     def.Name,
			required: def.Schema.Required,
			objects:  def.Schema.AdmitsObject(),
			schema:   s,
		})
	}
	return m, nil
}

// Names returns the definition names in priority order.
func (m *Matcher) Names() []string {
	names := make([]string, len(m.defs))
	for i, d := range m.defs {
		names[i] = d.name
	}
	return names
}

// Match classifies a single value.
func (m *Matcher) Match(value any) ValidationResult {
	obj, ok := value.(map[string]any)
	if !ok {
		return ValidationResult{JSON: value, IsValid: true}
	}

	def := m.selectFor(obj)
	if def == nil {
		return ValidationResult{JSON: value}
	}

	errs := validate(def.schema, obj)
	return ValidationResult{
		JSON:             value,
		MatchedSchema:    def.name,
		IsValid:          len(errs) == 0,
		ValidationErrors: errs,
	}
}

// MatchAll classifies values in order.
func (m *Matcher) MatchAll(values []any) []ValidationResult {
	results := make([]ValidationResult, len(values))
	for i, v := range values {
		results[i] = m.Match(v)
	}
	return results
}

func (m *Matcher) selectFor(obj map[string]any) *compiled {
	for i := range m.defs {
		d := &m.defs[i]
		if d.objects && hasKeys(obj, d.required) {
			return d
		}
	}
	return nil
}

func hasKeys(obj map[string]any, keys []string) bool {
	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			return false
		}
	}
	return true
}

// compile converts s to an OpenAPI schema and checks that it is well formed.
func compile(s *jsonschema.Schema) (*openapi3.Schema, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	out := &openapi3.Schema{}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	if err := out.Validate(context.Background()); err != nil {
		return nil, err
	}
	return out, nil
}

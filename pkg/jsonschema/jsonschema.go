package jsonschema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Schema is the subset of JSON Schema used to describe expected object shapes.
type Schema struct {
	// Type is one of "object", "array", "string", "number", "integer", "boolean".
	Type        string   `json:"type,omitempty" yaml:"type,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Required    []string `json:"required,omitempty" yaml:"required,omitempty"`
	// Properties of an object, each with its own schema.
	Properties map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	// Items is the schema of every element of an array.
	Items *Schema `json:"items,omitempty" yaml:"items,omitempty"`
	// AdditionalProperties is either a bool or a *Schema.
	AdditionalProperties any    `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	Enum                 []any  `json:"enum,omitempty" yaml:"enum,omitempty"`
	Format               string `json:"format,omitempty" yaml:"format,omitempty"`
	Pattern              string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	Minimum   *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum   *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	MinLength *uint64  `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *uint64  `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	MinItems  *uint64  `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems  *uint64  `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
}

// AdmitsObject reports whether a value of JSON type object can satisfy s.
// An untyped schema admits anything.
func (s *Schema) AdmitsObject() bool {
	return s != nil && (s.Type == "" || s.Type == "object")
}

// JSONString returns the JSON encoding of s, indented when indent is true.
func (s *Schema) JSONString(indent bool) (string, error) {
	var (
		b   []byte
		err error
	)
	if indent {
		b, err = json.MarshalIndent(s, "", "  ")
	} else {
		b, err = json.Marshal(s)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}
	return string(b), nil
}

func (s *Schema) String() string {
	out, err := s.JSONString(false)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return out
}

// Generate derives a Schema from the Go type T.
//
// Exported struct fields become properties named after their json tag. A
// field is required unless it is a pointer or tagged omitempty; the
// jsonschema tag can force it with "required" and set "description=..." and
// repeated "enum=..." entries.
func Generate[T any]() (*Schema, error) {
	g := &generator{active: map[reflect.Type]bool{}}
	s := g.schemaFor(reflect.TypeFor[T]())
	if g.err != nil {
		return nil, g.err
	}
	return s, nil
}

type generator struct {
	// active holds the struct types currently being expanded.
	active map[reflect.Type]bool
	err    error
}

func (g *generator) schemaFor(t reflect.Type) *Schema {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: g.schemaFor(t.Elem())}
	case reflect.Map:
		return &Schema{Type: "object", AdditionalProperties: g.schemaFor(t.Elem())}
	case reflect.Struct:
		return g.structSchema(t)
	case reflect.Interface:
		return &Schema{}
	default:
		return &Schema{Type: "object"}
	}
}

func (g *generator) structSchema(t reflect.Type) *Schema {
	if g.active[t] {
		return &Schema{Type: "object"}
	}
	g.active[t] = true
	defer delete(g.active, t)

	s := &Schema{Type: "object", Properties: map[string]*Schema{}}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitEmpty, skip := jsonName(field)
		if skip {
			continue
		}

		fs := g.schemaFor(field.Type)
		requiredByTag, err := applyTag(field.Type, field.Tag.Get("jsonschema"), fs)
		if err != nil && g.err == nil {
			g.err = fmt.Errorf("field %s.%s: %w", t.Name(), field.Name, err)
		}
		s.Properties[name] = fs

		if (field.Type.Kind() != reflect.Ptr && !omitEmpty) || requiredByTag {
			s.Required = append(s.Required, name)
		}
	}
	return s
}

func jsonName(field reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, strings.Contains(opts, "omitempty"), false
}

// applyTag applies a jsonschema struct tag to s and reports whether the tag
// marks the field as required.
func applyTag(t reflect.Type, tag string, s *Schema) (bool, error) {
	if tag == "" {
		return false, nil
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	required := false
	for _, item := range strings.Split(tag, ",") {
		key, value, hasValue := strings.Cut(strings.TrimSpace(item), "=")
		switch {
		case !hasValue && key == "required":
			required = true
		case key == "description":
			s.Description = value
		case key == "enum":
			v, err := enumValue(t, value)
			if err != nil {
				return required, err
			}
			s.Enum = append(s.Enum, v)
		}
	}
	return required, nil
}

func enumValue(t reflect.Type, value string) (any, error) {
	switch t.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v to int64 failed: %w", value, err)
		}
		return v, nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v to float64 failed: %w", value, err)
		}
		return v, nil
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v to bool failed: %w", value, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("enum tag unsupported for field type: %v", t)
	}
}

// Package jsonschema describes the shape an extracted JSON object is expected
// to have.
//
// A [Schema] is a plain, serialisable subset of JSON Schema: type, required
// keys, properties, items, enum and the usual string and numeric bounds. It
// can be written by hand, loaded from a file, or derived from a Go type with
// [Generate].
//
// Generated schemas are always self-contained. A struct that refers back to
// itself is described as an open object at the point of recursion instead of
// through $ref, so the result can be handed to any validator without a
// definitions table.
package jsonschema

// Package parse is the strict JSON boundary of llmjson.
//
// [Strict] decodes standards-compliant JSON text and reports failures as a
// position-tagged [*Error]; it never attempts repair. [Canonical] serialises a
// decoded value back to compact JSON, and [DecodeAs] converts a recovered
// value into a Go type, unwrapping the schema-style {"type", "value"}
// envelopes language models sometimes emit instead of plain data.
package parse

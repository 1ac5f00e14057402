package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Error is a strict parse failure at a byte offset of the parsed text.
type Error struct {
	Position int
	Message  string
}

// Error returns the message and position.
func (e *Error) Error() string {
	return fmt.Sprintf("%s at position %d", e.Message, e.Position)
}

// Strict decodes text as a single JSON value. Objects decode to
// map[string]any and arrays to []any. Numbers decode to float64, except
// integers that float64 cannot hold exactly, which stay json.Number so no
// digits are lost. Surrounding whitespace is allowed; any other trailing
// data is an error.
func Strict(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, decodeError(err, len(text))
	}

	offset := int(dec.InputOffset())
	if rest := strings.TrimLeft(text[offset:], jsonSpace); rest != "" {
		pos := len(text) - len(rest)
		return nil, &Error{
			Position: pos + 1,
			Message:  fmt.Sprintf("invalid character %q after top-level value", rest[0]),
		}
	}
	return normalizeNumbers(value), nil
}

const jsonSpace = " \t\r\n"

func decodeError(err error, length int) error {
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &syntaxErr):
		return &Error{Position: int(syntaxErr.Offset), Message: syntaxErr.Error()}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &Error{Position: length, Message: "unexpected end of JSON input"}
	default:
		return &Error{Position: 0, Message: err.Error()}
	}
}

// normalizeNumbers replaces json.Number values with float64 wherever the
// conversion is exact.
func normalizeNumbers(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for k, item := range v {
			v[k] = normalizeNumbers(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = normalizeNumbers(item)
		}
		return v
	case json.Number:
		return number(v)
	default:
		return v
	}
}

func number(n json.Number) any {
	f, err := n.Float64()
	if err != nil {
		return n
	}
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		return f
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil || float64(i) != f || int64(f) != i {
		return n
	}
	return f
}

// Valid reports whether text is strict JSON.
func Valid(text string) bool {
	return json.Valid([]byte(text))
}

// Canonical serialises value as compact JSON with sorted object keys and
// without HTML escaping.
func Canonical(value any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return "", fmt.Errorf("failed to serialise value: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// IsObject reports whether value is a decoded JSON object.
func IsObject(value any) bool {
	_, ok := value.(map[string]any)
	return ok
}

// IsArray reports whether value is a decoded JSON array.
func IsArray(value any) bool {
	_, ok := value.([]any)
	return ok
}

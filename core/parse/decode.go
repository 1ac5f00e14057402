package parse

import (
	"encoding/json"
	"fmt"
)

// DecodeAs converts a decoded JSON value into T through a JSON round trip.
// When the value does not fit T it retries once after unwrapping schema-like
// {"type": ..., "value": ...} envelopes, a common error when models confuse a
// JSON schema with the data it describes.
//
// Example:
//
//	type Person struct {
//	    Name string `json:"name"`
//	    Age  int    `json:"age"`
//	}
//
//	person, err := DecodeAs[Person](map[string]any{"name": "John", "age": 30.0})
func DecodeAs[T any](value any) (T, error) {
	var result T

	raw, err := json.Marshal(value)
	if err != nil {
		return result, fmt.Errorf("failed to marshal value: %w", err)
	}
	err = json.Unmarshal(raw, &result)
	if err == nil {
		return result, nil
	}

	unwrapped, unwrapErr := json.Marshal(recursiveUnwrap(value))
	if unwrapErr == nil {
		var retry T
		if json.Unmarshal(unwrapped, &retry) == nil {
			return retry, nil
		}
	}
	return result, fmt.Errorf("failed to decode value as %T: %w (value: %s)", result, err, raw)
}

// recursiveUnwrap replaces every {"type": ..., "value": ...} object that has
// exactly those two keys with its value.
//
// Example input:
//
//	{"name": {"type": "string", "value": "John"}, "age": {"type": "integer", "value": 30}}
//
// Example output:
//
//	{"name": "John", "age": 30}
func recursiveUnwrap(data any) any {
	switch v := data.(type) {
	case map[string]any:
		if _, hasType := v["type"]; hasType {
			if value, hasValue := v["value"]; hasValue && len(v) == 2 {
				return recursiveUnwrap(value)
			}
		}
		result := make(map[string]any, len(v))
		for key, val := range v {
			result[key] = recursiveUnwrap(val)
		}
		return result

	case []any:
		result := make([]any, len(v))
		for i, val := range v {
			result[i] = recursiveUnwrap(val)
		}
		return result

	default:
		return data
	}
}

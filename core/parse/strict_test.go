package parse

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStrict(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    any
		wantErr bool
	}{
		{
			name:  "object",
			input: `{"name": "John", "age": 30}`,
			want:  map[string]any{"name": "John", "age": float64(30)},
		},
		{
			name:  "array with surrounding whitespace",
			input: "  [1, 2, 3]\n",
			want:  []any{float64(1), float64(2), float64(3)},
		},
		{
			name:  "nested values",
			input: `{"a": [true, null, {"b": "c"}]}`,
			want:  map[string]any{"a": []any{true, nil, map[string]any{"b": "c"}}},
		},
		{
			name:  "integer beyond float64 precision",
			input: `{"n": 12345678901234567890, "m": 9007199254740993}`,
			want: map[string]any{
				"n": json.Number("12345678901234567890"),
				"m": json.Number("9007199254740993"),
			},
		},
		{
			name:  "exact numbers stay float64",
			input: `[9007199254740992, -7, 1.5, 2e3]`,
			want:  []any{float64(9007199254740992), float64(-7), 1.5, float64(2000)},
		},
		{
			name:    "unquoted key",
			input:   `{name: "John"}`,
			wantErr: true,
		},
		{
			name:    "trailing data",
			input:   `{"a": 1} {"b": 2}`,
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Strict(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Strict() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Strict() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStrictErrorPosition(t *testing.T) {
	_, err := Strict(`{"a": 1,}`)
	var parseErr *Error
	if !errors.As(err, &parseErr) {
		t.Fatalf("Strict() error = %T, want *Error", err)
	}
	if parseErr.Position != 9 {
		t.Errorf("Position = %d, want 9", parseErr.Position)
	}
	if parseErr.Error() == "" {
		t.Error("Error() should not be empty")
	}
}

func TestStrictErrorPositionAtEnd(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"truncated", `{"a": 1`, 7},
		{"trailing data", `{"a": 1} x`, 10},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Strict(tt.input)
			var parseErr *Error
			if !errors.As(err, &parseErr) {
				t.Fatalf("Strict() error = %v, want *Error", err)
			}
			if parseErr.Position != tt.want {
				t.Errorf("Position = %d, want %d", parseErr.Position, tt.want)
			}
		})
	}
}

func TestCanonicalKeepsLargeIntegers(t *testing.T) {
	value, err := Strict(`{"id":12345678901234567890}`)
	if err != nil {
		t.Fatalf("Strict() error = %v", err)
	}
	got, err := Canonical(value)
	if err != nil {
		t.Fatalf("Canonical() error = %v", err)
	}
	if want := `{"id":12345678901234567890}`; got != want {
		t.Errorf("Canonical() = %s, want %s", got, want)
	}
}

func TestCanonical(t *testing.T) {
	got, err := Canonical(map[string]any{"b": "<x>", "a": []any{float64(1), true}})
	if err != nil {
		t.Fatalf("Canonical() error = %v", err)
	}
	want := `{"a":[1,true],"b":"<x>"}`
	if got != want {
		t.Errorf("Canonical() = %s, want %s", got, want)
	}
	if !Valid(got) {
		t.Errorf("Canonical() output %s is not valid JSON", got)
	}
}

func TestCanonicalUnsupportedValue(t *testing.T) {
	if _, err := Canonical(map[string]any{"f": func() {}}); err == nil {
		t.Error("Canonical() expected error for a func value")
	}
}

func TestKindHelpers(t *testing.T) {
	if !IsObject(map[string]any{}) || IsObject([]any{}) {
		t.Error("IsObject() misclassified a value")
	}
	if !IsArray([]any{}) || IsArray("x") {
		t.Error("IsArray() misclassified a value")
	}
}

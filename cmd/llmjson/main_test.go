package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func runCLI(t *testing.T, stdin string, args ...string) (map[string]any, string, error) {
	t.Helper()
	t.Setenv("LLMJSON_ATTEMPT_CORRECTION", "")
	t.Setenv("LLMJSON_REPAIR_FALLBACK", "")
	t.Setenv("LLMJSON_SCHEMA_DIR", "")
	t.Setenv("LLMJSON_LOG_LEVEL", "error")
	t.Setenv("LLMJSON_LOG_FORMAT", "")

	var stdout, stderr bytes.Buffer
	args = append([]string{"-env", filepath.Join(t.TempDir(), "none.env")}, args...)
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)
	if err != nil {
		return nil, stderr.String(), err
	}
	var out map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %q: %v", stdout.String(), err)
	}
	return out, stderr.String(), nil
}

func TestRunStdin(t *testing.T) {
	out, _, err := runCLI(t, `Result: {name: "Jane"} and [1, 2]`)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	want := map[string]any{
		"text": []any{"Result: ", " and [1, 2]"},
		"json": []any{map[string]any{"name": "Jane"}},
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunFlags(t *testing.T) {
	out, _, err := runCLI(t, `{name: "Jane"} [1, 2]`, "-all", "-no-correct", "-pretty")
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	want := map[string]any{
		"text": []any{"{name: \"Jane\"} "},
		"json": []any{[]any{1.0, 2.0}},
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunFileAndSchemas(t *testing.T) {
	dir := t.TempDir()
	schemas := filepath.Join(dir, "schemas")
	if err := os.Mkdir(schemas, 0o700); err != nil {
		t.Fatal(err)
	}
	def := "name: person\nschema:\n  type: object\n  required: [name, age]\n"
	if err := os.WriteFile(filepath.Join(schemas, "person.yaml"), []byte(def), 0o600); err != nil {
		t.Fatal(err)
	}
	input := filepath.Join(dir, "reply.txt")
	if err := os.WriteFile(input, []byte(`{"name":"John","age":30} {"name":"Bob"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, "", "-schemas", schemas, input)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	validated, ok := out["validated_json"].([]any)
	if !ok || len(validated) != 2 {
		t.Fatalf("validated_json = %v, want 2 entries", out["validated_json"])
	}
	first := validated[0].(map[string]any)
	second := validated[1].(map[string]any)
	if first["matched_schema"] != "person" || first["is_valid"] != true {
		t.Errorf("validated_json[0] = %v", first)
	}
	if second["matched_schema"] != nil || second["is_valid"] != false {
		t.Errorf("validated_json[1] = %v", second)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-bogus"}},
		{"too many files", []string{"a", "b"}},
		{"missing file", []string{filepath.Join(os.TempDir(), "llmjson-does-not-exist.txt")}},
		{"missing schema dir", []string{"-schemas", filepath.Join(os.TempDir(), "llmjson-no-schemas")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCLI(t, "", tt.args...); err == nil {
				t.Error("run() error = nil, want error")
			}
		})
	}
}

func TestRunHelp(t *testing.T) {
	_, stderr, err := runCLI(t, "", "-h")
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("run(-h) error = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(stderr, "-schemas") {
		t.Errorf("usage output missing flags: %q", stderr)
	}
}

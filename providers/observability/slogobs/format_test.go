package slogobs

import "testing"

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"TEXT", FormatText, false},
		{"", FormatCompact, false},
		{"Compact", FormatCompact, false},
		{" json ", FormatJSON, false},
		{"pretty", FormatCompact, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		own     string
		generic string
		want    Format
	}{
		{"own variable wins", "json", "text", FormatJSON},
		{"generic fallback", "", "json", FormatJSON},
		{"text", "text", "", FormatText},
		{"default", "", "", FormatCompact},
		{"invalid falls back to compact", "xml", "", FormatCompact},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LLMJSON_LOG_FORMAT", tt.own)
			t.Setenv("LOG_FORMAT", tt.generic)
			if got := FormatFromEnv(); got != tt.want {
				t.Errorf("FormatFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatString(t *testing.T) {
	if FormatJSON.String() != "json" {
		t.Errorf("FormatJSON.String() = %q, want json", FormatJSON.String())
	}
}

package timestamp

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-06-01T10:00:00Z", time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-06-01T12:00:00+02:00", time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-06-01T10:00:00.250Z", time.Date(2024, 6, 1, 10, 0, 0, 250e6, time.UTC)},
		{"2024-06-01T10:00:00", time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-06-01T10:00", time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-15 10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15 10:30:00,123", time.Date(2024, 1, 15, 10, 30, 0, 123e6, time.UTC)},
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"  2024-01-15  ", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"Jun  4 2024 15:16:01", time.Date(2024, 6, 4, 15, 16, 1, 0, time.UTC)},
		{"15/Jun/2024:10:30:00 +0000", time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)},
		{"1705315800", time.Unix(1705315800, 0).UTC()},
		{"1705315800000", time.UnixMilli(1705315800000).UTC()},
		{"01/15/2024 10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if !ok {
				t.Fatalf("Parse(%q) failed", tt.input)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"yesterday",
		"2024-13-45",
		"2024-02-30T10:00:00Z",
		"12345",
		"9999999999",
	}

	for _, input := range tests {
		if got, ok := Parse(input); ok {
			t.Errorf("Parse(%q) = %v, want failure", input, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  Jan   5 2024\t09:30:00 "); got != "Jan 5 2024 09:30:00" {
		t.Errorf("Normalize() = %q", got)
	}
}

func TestDefaultFormats_ExamplesParse(t *testing.T) {
	for _, f := range DefaultFormats() {
		for _, ex := range f.Examples {
			if !f.Pattern.MatchString(ex) {
				t.Errorf("%s: pattern does not match example %q", f.Name, ex)
			}
			if _, ok := parseLayout(ex, f.Layout); !ok {
				t.Errorf("%s: layout cannot parse example %q", f.Name, ex)
			}
		}
	}
}

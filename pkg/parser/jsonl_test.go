package parser

import (
	"strings"
	"testing"

	"github.com/ccollicutt/logview/pkg/record"
)

func TestJSONLinesParser_ValidLines(t *testing.T) {
	content := `{"timestamp":"2024-06-01T10:00:00Z","level":"ERROR","message":"disk full","host":"db1"}
{"timestamp":"2024-06-01T10:01:00Z","level":"INFO","message":"retry ok"}
`
	records, stats := NewJSONLinesParser().Parse("app.json", content)

	if len(records) != 2 {
		t.Fatalf("Got %d records, want 2", len(records))
	}
	if stats.Failed != 0 {
		t.Errorf("Failed = %d, want 0", stats.Failed)
	}

	r := records[0]
	if r.Timestamp != "2024-06-01T10:00:00Z" || r.Level != "ERROR" || r.Message != "disk full" {
		t.Errorf("Record = %+v", r)
	}
	if !strings.HasPrefix(r.Raw, `{"timestamp":"2024-06-01T10:00:00Z"`) {
		t.Errorf("Raw = %q, want original line", r.Raw)
	}
	if r.Source != "app.json" {
		t.Errorf("Source = %q", r.Source)
	}
}

func TestJSONLinesParser_MalformedLineBecomesUnknown(t *testing.T) {
	content := "{\"timestamp\":\"2024-06-01T10:00:00Z\",\"level\":\"INFO\",\"message\":\"ok\"}\n{not json at all\n"

	records, stats := NewJSONLinesParser().Parse("bad.json", content)

	if len(records) != 2 {
		t.Fatalf("Got %d records, want 2", len(records))
	}
	if stats.Failed != 1 {
		t.Errorf("Failed = %d, want 1", stats.Failed)
	}

	bad := records[1]
	if bad.Level != record.LevelUnknown {
		t.Errorf("Level = %q, want UNKNOWN", bad.Level)
	}
	if bad.Message != "{not json at all" || bad.Raw != "{not json at all" {
		t.Errorf("Placeholder = %+v", bad)
	}
}

func TestJSONLinesParser_CountEqualsNonBlankLines(t *testing.T) {
	lines := []string{
		`{"level":"INFO","message":"a"}`,
		"",
		"   ",
		`garbage`,
		`{"level":"DEBUG"}`,
		"\t",
		`[1,2,3]`,
		`{"message":`,
	}
	content := strings.Join(lines, "\n")

	records, stats := NewJSONLinesParser().Parse("count.json", content)

	if len(records) != 5 {
		t.Errorf("Got %d records, want 5", len(records))
	}
	if stats.Records != 5 {
		t.Errorf("Stats.Records = %d, want 5", stats.Records)
	}
	if stats.Failed != 2 {
		t.Errorf("Stats.Failed = %d, want 2", stats.Failed)
	}
}

func TestJSONLinesParser_FieldConversion(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		timestamp string
		level     string
		message   string
	}{
		{"missing fields", `{"other":1}`, "", "", ""},
		{"null fields", `{"timestamp":null,"level":null,"message":null}`, "", "", ""},
		{"numeric timestamp", `{"timestamp":1717236000,"level":"INFO","message":"x"}`, "1717236000", "INFO", "x"},
		{"object message", `{"message":{"a":1}}`, "", "", `{"a":1}`},
		{"escaped string", `{"message":"say \"hi\"\n"}`, "", "", "say \"hi\"\n"},
		{"non-object value", `"just a string"`, "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, stats := NewJSONLinesParser().Parse("f.json", tt.line)
			if len(records) != 1 {
				t.Fatalf("Got %d records, want 1", len(records))
			}
			if stats.Failed != 0 {
				t.Fatalf("Failed = %d, want 0", stats.Failed)
			}
			r := records[0]
			if r.Timestamp != tt.timestamp {
				t.Errorf("Timestamp = %q, want %q", r.Timestamp, tt.timestamp)
			}
			if r.Level != tt.level {
				t.Errorf("Level = %q, want %q", r.Level, tt.level)
			}
			if r.Message != tt.message {
				t.Errorf("Message = %q, want %q", r.Message, tt.message)
			}
			if r.Raw != tt.line {
				t.Errorf("Raw = %q, want %q", r.Raw, tt.line)
			}
		})
	}
}

func TestJSONLinesParser_Empty(t *testing.T) {
	records, stats := NewJSONLinesParser().Parse("empty.json", "\n\n  \n")
	if len(records) != 0 || stats.Records != 0 {
		t.Errorf("Got %d records, stats %+v; want none", len(records), stats)
	}
}

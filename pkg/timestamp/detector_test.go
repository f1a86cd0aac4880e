package timestamp

import (
	"testing"

	"github.com/ccollicutt/logview/pkg/record"
)

func TestDetector_Detect_ISO8601(t *testing.T) {
	values := []string{
		"2024-06-01T10:00:00Z",
		"2024-06-01T10:01:00Z",
		"2024-06-01T10:02:00.500Z",
	}

	result := NewDetector().Detect(values)

	if !result.HasMatch() {
		t.Fatal("Expected to detect a format")
	}
	best := result.BestMatch()
	if best.Format.Name != "ISO 8601 with timezone" {
		t.Errorf("Expected ISO 8601 with timezone, got %s", best.Format.Name)
	}
	if best.Confidence != 1.0 {
		t.Errorf("Expected 100%% confidence, got %.1f%%", best.Confidence*100)
	}
	if result.Coverage() != 1.0 {
		t.Errorf("Coverage = %.2f, want 1.0", result.Coverage())
	}
}

func TestDetector_Detect_Mixed(t *testing.T) {
	values := []string{
		"2024-01-15 10:30:00",
		"2024-01-15 10:30:05",
		"2024-01-15 10:30:10",
		"2024-01-15",
		"not a date",
		"",
	}

	result := NewDetector().Detect(values)

	if result.SampledValues != 5 {
		t.Errorf("SampledValues = %d, want 5", result.SampledValues)
	}
	if result.EmptyValues != 1 {
		t.Errorf("EmptyValues = %d, want 1", result.EmptyValues)
	}
	if result.ParsedValues != 4 {
		t.Errorf("ParsedValues = %d, want 4", result.ParsedValues)
	}
	if len(result.Unparsed) != 1 || result.Unparsed[0] != "not a date" {
		t.Errorf("Unparsed = %v", result.Unparsed)
	}

	best := result.BestMatch()
	if best.Format.Name != "Datetime (space-separated)" {
		t.Errorf("Expected Datetime (space-separated), got %s", best.Format.Name)
	}
	if best.Confidence != 0.6 {
		t.Errorf("Confidence = %.2f, want 0.60", best.Confidence)
	}
	if len(result.Matches) != 2 {
		t.Errorf("Matches = %d, want 2", len(result.Matches))
	}
}

func TestDetector_Detect_Ambiguous(t *testing.T) {
	result := NewDetector().Detect([]string{"01/15/2024 10:30:00"})

	if result.AmbiguityNote == "" {
		t.Error("Expected ambiguity note for MM/DD/YYYY format")
	}
}

func TestDetector_Detect_Empty(t *testing.T) {
	result := NewDetector().Detect(nil)

	if result.HasMatch() {
		t.Error("Expected no match for empty input")
	}
	if result.BestMatch() != nil {
		t.Error("BestMatch() should be nil")
	}
	if result.Coverage() != 0 {
		t.Errorf("Coverage = %.2f, want 0", result.Coverage())
	}
}

func TestDetector_DetectRecords_SampleSize(t *testing.T) {
	records := []record.LogRecord{
		{Timestamp: "2024-01-15"},
		{Timestamp: "2024-01-16"},
		{Timestamp: "garbage"},
	}

	result := NewDetector(WithSampleSize(2)).DetectRecords(records)

	if result.SampledValues != 2 {
		t.Errorf("SampledValues = %d, want 2", result.SampledValues)
	}
	if result.ParsedValues != 2 {
		t.Errorf("ParsedValues = %d, want 2", result.ParsedValues)
	}
}

package timestamp

import (
	"sort"
	"time"

	"github.com/ccollicutt/logview/pkg/record"
)

// DetectionResult holds the result of analyzing a set of timestamps.
type DetectionResult struct {
	Matches       []FormatMatch // Formats that matched, sorted by confidence descending
	SampledValues int           // Number of non-empty values sampled
	ParsedValues  int           // Number of values any format could parse
	EmptyValues   int           // Number of records without a timestamp
	Unparsed      []string      // Up to maxUnparsedExamples values no format could parse
	AmbiguityNote string        // Warning about date ordering if applicable
}

// FormatMatch represents a format that matched with its confidence score.
type FormatMatch struct {
	Format     *Format
	Confidence float64   // 0.0 to 1.0 (share of sampled values)
	MatchCount int       // Number of values that matched
	Sample     string    // Example value that matched
	ParsedTime time.Time // Parsed time of the sample
}

const maxUnparsedExamples = 5

// Detector reports which timestamp formats a record set uses, so users
// can tell whether date-range filters will see their records.
type Detector struct {
	formats    []*Format
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of values to sample (default 1000).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// NewDetector creates a Detector with the default formats.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		formats:    DefaultFormats(),
		sampleSize: 1000,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectRecords samples the timestamps of records, in order.
func (d *Detector) DetectRecords(records []record.LogRecord) *DetectionResult {
	values := make([]string, 0, min(len(records), d.sampleSize))
	for _, r := range records {
		if len(values) >= d.sampleSize {
			break
		}
		values = append(values, r.Timestamp)
	}
	return d.Detect(values)
}

// Detect analyzes a slice of timestamp values.
func (d *Detector) Detect(values []string) *DetectionResult {
	result := &DetectionResult{}

	type formatStats struct {
		format     *Format
		matchCount int
		sample     string
		parsedTime time.Time
	}
	stats := make(map[string]*formatStats)

	for _, v := range values {
		if Normalize(v) == "" {
			result.EmptyValues++
			continue
		}
		result.SampledValues++

		t, format, ok := parseWith(d.formats, v)
		if !ok {
			if len(result.Unparsed) < maxUnparsedExamples {
				result.Unparsed = append(result.Unparsed, v)
			}
			continue
		}
		result.ParsedValues++

		s := stats[format.Name]
		if s == nil {
			s = &formatStats{format: format, sample: v, parsedTime: t}
			stats[format.Name] = s
		}
		s.matchCount++
	}

	for _, s := range stats {
		result.Matches = append(result.Matches, FormatMatch{
			Format:     s.format,
			Confidence: float64(s.matchCount) / float64(result.SampledValues),
			MatchCount: s.matchCount,
			Sample:     s.sample,
			ParsedTime: s.parsedTime,
		})
	}

	// Sort by confidence descending, then by name for stable output
	sort.Slice(result.Matches, func(i, j int) bool {
		if result.Matches[i].Confidence != result.Matches[j].Confidence {
			return result.Matches[i].Confidence > result.Matches[j].Confidence
		}
		return result.Matches[i].Format.Name < result.Matches[j].Format.Name
	})

	if len(result.Matches) > 0 && result.Matches[0].Format.Ambiguous {
		result.AmbiguityNote = "This format has date ordering ambiguity (MM/DD vs DD/MM). " +
			"Values are read as MM/DD/YYYY; date filters may misplace European-style dates."
	}

	return result
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *FormatMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one format matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}

// Coverage returns the share of sampled values that parse as dates.
func (r *DetectionResult) Coverage() float64 {
	if r.SampledValues == 0 {
		return 0
	}
	return float64(r.ParsedValues) / float64(r.SampledValues)
}

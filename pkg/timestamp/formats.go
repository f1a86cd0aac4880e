package timestamp

import "regexp"

// Format is a timestamp representation that Parse understands.
type Format struct {
	Name       string         // Human-readable name
	Pattern    *regexp.Regexp // Compiled full-value regex (set during init)
	PatternStr string         // Pattern source
	Layout     string         // Go time layout, or one of the Unix pseudo-layouts
	Examples   []string       // Example values
	Ambiguous  bool           // True if format has date ordering ambiguity (MM/DD vs DD/MM)
}

// Pseudo-layouts for numeric epoch timestamps.
const (
	layoutUnixSeconds = "UNIX_SECONDS"
	layoutUnixMillis  = "UNIX_MILLIS"
)

// DefaultFormats returns the built-in formats. Patterns match the whole
// value (after whitespace is collapsed), so at most one or two formats
// can claim any given value; more specific formats come first.
func DefaultFormats() []*Format {
	formats := []*Format{
		{
			Name:       "ISO 8601 with timezone",
			PatternStr: `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})$`,
			Layout:     "2006-01-02T15:04:05Z07:00",
			Examples:   []string{"2024-06-01T10:00:00Z", "2024-06-01T10:00:00.123+02:00"},
		},
		{
			Name:       "ISO 8601",
			PatternStr: `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?$`,
			Layout:     "2006-01-02T15:04:05",
			Examples:   []string{"2024-06-01T10:00:00", "2024-06-01T10:00:00.123"},
		},
		{
			Name:       "ISO 8601 (minutes)",
			PatternStr: `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}$`,
			Layout:     "2006-01-02T15:04",
			Examples:   []string{"2024-06-01T10:00"},
		},
		{
			Name:       "Python logging",
			PatternStr: `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3}$`,
			Layout:     "2006-01-02 15:04:05,000",
			Examples:   []string{"2024-01-15 10:30:00,123"},
		},
		{
			Name:       "Datetime with timezone (space-separated)",
			PatternStr: `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})$`,
			Layout:     "2006-01-02 15:04:05Z07:00",
			Examples:   []string{"2024-01-15 10:30:00+00:00"},
		},
		{
			Name:       "Datetime (space-separated)",
			PatternStr: `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:\.\d+)?$`,
			Layout:     "2006-01-02 15:04:05",
			Examples:   []string{"2024-01-15 10:30:00", "2024-01-15 10:30:00.123"},
		},
		{
			Name:       "Date",
			PatternStr: `^\d{4}-\d{2}-\d{2}$`,
			Layout:     "2006-01-02",
			Examples:   []string{"2024-01-15"},
		},
		{
			Name:       "Syslog with year",
			PatternStr: `^\w{3} \d{1,2} \d{4} \d{2}:\d{2}:\d{2}$`,
			Layout:     "Jan 2 2006 15:04:05",
			Examples:   []string{"Jun 14 2024 15:16:01"},
		},
		{
			Name:       "Apache/NGINX CLF",
			PatternStr: `^\d{2}/\w{3}/\d{4}:\d{2}:\d{2}:\d{2} [+-]\d{4}$`,
			Layout:     "02/Jan/2006:15:04:05 -0700",
			Examples:   []string{"15/Jun/2024:10:30:00 +0000"},
		},
		{
			Name:       "RFC 1123",
			PatternStr: `^\w{3}, \d{2} \w{3} \d{4} \d{2}:\d{2}:\d{2} \w+$`,
			Layout:     "Mon, 02 Jan 2006 15:04:05 MST",
			Examples:   []string{"Sat, 01 Jun 2024 10:00:00 UTC"},
		},
		{
			Name:       "Unix timestamp (seconds)",
			PatternStr: `^\d{10}$`,
			Layout:     layoutUnixSeconds,
			Examples:   []string{"1705315800"},
		},
		{
			Name:       "Unix timestamp (milliseconds)",
			PatternStr: `^\d{13}$`,
			Layout:     layoutUnixMillis,
			Examples:   []string{"1705315800000"},
		},
		{
			Name:       "US date format (MM/DD/YYYY)",
			PatternStr: `^\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}$`,
			Layout:     "01/02/2006 15:04:05",
			Examples:   []string{"01/15/2024 10:30:00"},
			Ambiguous:  true,
		},
	}

	for _, f := range formats {
		f.Pattern = regexp.MustCompile(f.PatternStr)
	}

	return formats
}

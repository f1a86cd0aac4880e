// Package timestamp interprets the opaque timestamp strings carried by log
// records as dates, and reports which formats a set of records uses.
package timestamp

import (
	"strconv"
	"strings"
	"time"
)

// maxUnixSeconds bounds epoch values to a sane range (year 2100).
const maxUnixSeconds = 4102444800

var defaultFormats = DefaultFormats()

// Parse interprets s as a date using the default formats. Values without
// a zone are read as UTC. The second result is false if no format fits.
func Parse(s string) (time.Time, bool) {
	t, _, ok := parseWith(defaultFormats, s)
	return t, ok
}

// Normalize collapses runs of whitespace and trims the value, so that
// "Jan  5 2024 09:30:00" and "Jan 5 2024 09:30:00" parse alike.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// parseWith tries each format in order and returns the first that both
// matches and parses.
func parseWith(formats []*Format, s string) (time.Time, *Format, bool) {
	s = Normalize(s)
	if s == "" {
		return time.Time{}, nil, false
	}

	for _, f := range formats {
		if !f.Pattern.MatchString(s) {
			continue
		}
		if t, ok := parseLayout(s, f.Layout); ok {
			return t, f, true
		}
	}
	return time.Time{}, nil, false
}

// parseLayout parses s with a Go layout or a Unix pseudo-layout.
func parseLayout(s, layout string) (time.Time, bool) {
	switch layout {
	case layoutUnixSeconds:
		secs, err := strconv.ParseInt(s, 10, 64)
		if err != nil || secs < 0 || secs > maxUnixSeconds {
			return time.Time{}, false
		}
		return time.Unix(secs, 0).UTC(), true

	case layoutUnixMillis:
		millis, err := strconv.ParseInt(s, 10, 64)
		if err != nil || millis/1000 < 0 || millis/1000 > maxUnixSeconds {
			return time.Time{}, false
		}
		return time.UnixMilli(millis).UTC(), true

	default:
		t, err := time.Parse(layout, s)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
}

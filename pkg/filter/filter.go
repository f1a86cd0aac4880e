// Package filter narrows a record sequence by text, level, and date range.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/ccollicutt/logview/pkg/record"
	"github.com/ccollicutt/logview/pkg/timestamp"
)

// Criteria is the set of constraints applied to records. The zero value
// matches everything.
type Criteria struct {
	// Query is matched as a case-insensitive substring of Raw.
	Query string

	// Level must equal the record level exactly when set.
	Level string

	// From and To are inclusive date bounds.
	From *time.Time
	To   *time.Time
}

// IsZero reports whether the criteria match every record.
func (c Criteria) IsZero() bool {
	return c.Query == "" && c.Level == "" && c.From == nil && c.To == nil
}

// HasDateBounds reports whether a date bound is active.
func (c Criteria) HasDateBounds() bool {
	return c.From != nil || c.To != nil
}

// ParseCriteria builds criteria from user input. Empty strings leave the
// matching constraint unset; dates accept any format timestamp.Parse knows.
func ParseCriteria(query, level, from, to string) (Criteria, error) {
	c := Criteria{
		Query: query,
		Level: strings.TrimSpace(level),
	}

	if strings.TrimSpace(from) != "" {
		t, ok := timestamp.Parse(from)
		if !ok {
			return Criteria{}, fmt.Errorf("invalid from date %q", from)
		}
		c.From = &t
	}

	if strings.TrimSpace(to) != "" {
		t, ok := timestamp.Parse(to)
		if !ok {
			return Criteria{}, fmt.Errorf("invalid to date %q", to)
		}
		c.To = &t
	}

	if c.From != nil && c.To != nil && c.From.After(*c.To) {
		return Criteria{}, fmt.Errorf("from date %s is after to date %s",
			c.From.Format(time.RFC3339), c.To.Format(time.RFC3339))
	}

	return c, nil
}

// LastDays returns criteria bounded to the n days ending at now.
func LastDays(n int, now time.Time) Criteria {
	from := now.Add(-time.Duration(n) * 24 * time.Hour)
	return Criteria{From: &from, To: &now}
}

// WithDates returns a copy of c whose date bounds are replaced by other's.
func (c Criteria) WithDates(other Criteria) Criteria {
	c.From = other.From
	c.To = other.To
	return c
}

// Matcher evaluates criteria against single records. The lowercased
// query is computed once.
type Matcher struct {
	criteria Criteria
	query    string
}

// NewMatcher prepares criteria for repeated matching.
func NewMatcher(c Criteria) *Matcher {
	return &Matcher{criteria: c, query: strings.ToLower(c.Query)}
}

// Match reports whether r satisfies every constraint.
func (m *Matcher) Match(r record.LogRecord) bool {
	if m.query != "" && !strings.Contains(strings.ToLower(r.Raw), m.query) {
		return false
	}

	if m.criteria.Level != "" && r.Level != m.criteria.Level {
		return false
	}

	if m.criteria.HasDateBounds() {
		t, ok := timestamp.Parse(r.Timestamp)
		if !ok {
			return false
		}
		if m.criteria.From != nil && t.Before(*m.criteria.From) {
			return false
		}
		if m.criteria.To != nil && t.After(*m.criteria.To) {
			return false
		}
	}

	return true
}

// Apply returns the records matching c, in their original order. The
// input slice is not modified.
func Apply(records []record.LogRecord, c Criteria) []record.LogRecord {
	m := NewMatcher(c)
	out := make([]record.LogRecord, 0, len(records))
	for _, r := range records {
		if m.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

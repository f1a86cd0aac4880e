// Package summary computes the headline counters shown for a record set.
package summary

import (
	"math"
	"sort"

	"github.com/ccollicutt/logview/pkg/record"
)

// TopErrorLimit is the number of most frequent error messages reported.
const TopErrorLimit = 5

// MessageCount pairs a message with how often it occurred.
type MessageCount struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// Summary holds aggregate statistics over a set of records.
type Summary struct {
	Total    int `json:"total"`
	Debug    int `json:"debug"`
	Info     int `json:"info"`
	Warning  int `json:"warning"`
	Error    int `json:"error"`
	Critical int `json:"critical"`
	Unknown  int `json:"unknown"`

	// Levels counts every level seen, including non-conventional ones.
	// Records without a level are counted as UNKNOWN.
	Levels map[string]int `json:"levels"`

	// ErrorRate is the percentage of ERROR records, rounded to two decimals.
	ErrorRate float64 `json:"error_rate"`

	// TopErrors lists the most frequent ERROR messages, most frequent first.
	TopErrors []MessageCount `json:"top_errors,omitempty"`
}

// Compute summarizes records.
func Compute(records []record.LogRecord) Summary {
	s := Summary{
		Total:  len(records),
		Levels: make(map[string]int),
	}

	errorMessages := make(map[string]int)
	var order []string

	for _, r := range records {
		s.Levels[r.LevelOrUnknown()]++

		switch r.Level {
		case record.LevelDebug:
			s.Debug++
		case record.LevelInfo:
			s.Info++
		case record.LevelWarning:
			s.Warning++
		case record.LevelError:
			s.Error++
			msg := r.Display()
			if _, seen := errorMessages[msg]; !seen {
				order = append(order, msg)
			}
			errorMessages[msg]++
		case record.LevelCritical:
			s.Critical++
		case record.LevelUnknown, "":
			s.Unknown++
		}
	}

	if s.Total > 0 {
		s.ErrorRate = math.Round(float64(s.Error)/float64(s.Total)*10000) / 100
	}

	s.TopErrors = topN(order, errorMessages, TopErrorLimit)
	return s
}

// HasLevelAtLeast reports whether any record is at or above level in
// the conventional DEBUG < INFO < WARNING < ERROR < CRITICAL order.
func (s Summary) HasLevelAtLeast(level string) bool {
	counts := []int{s.Debug, s.Info, s.Warning, s.Error, s.Critical}
	for i, l := range record.KnownLevels {
		if l == level {
			for _, c := range counts[i:] {
				if c > 0 {
					return true
				}
			}
			return false
		}
	}
	return false
}

// topN returns the n highest counts. Ties keep first-seen order.
func topN(order []string, counts map[string]int, n int) []MessageCount {
	out := make([]MessageCount, 0, len(order))
	for _, msg := range order {
		out = append(out, MessageCount{Message: msg, Count: counts[msg]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > n {
		out = out[:n]
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

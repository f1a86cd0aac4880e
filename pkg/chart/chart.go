// Package chart builds chart datasets from records. Rendering is left to
// the caller; every chart is plain data that encodes cleanly as JSON.
package chart

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ccollicutt/logview/pkg/record"
	"github.com/ccollicutt/logview/pkg/timestamp"
)

// Kind names a chart.
type Kind string

const (
	KindVolume     Kind = "volume"
	KindLevels     Kind = "levels"
	KindTopErrors  Kind = "top-errors"
	KindAnomaly    Kind = "anomaly"
	KindCritical   Kind = "critical"
	KindErrorTrend Kind = "error-trend"
)

// Kinds lists every chart kind in display order.
var Kinds = []Kind{KindVolume, KindLevels, KindTopErrors, KindAnomaly, KindCritical, KindErrorTrend}

// Dataset is one series of values aligned with the chart labels.
type Dataset struct {
	Label string `json:"label"`
	Data  []int  `json:"data"`
}

// Chart is a labelled set of series.
type Chart struct {
	Kind     Kind      `json:"kind"`
	Type     string    `json:"type"` // line, bar, pie, doughnut
	Title    string    `json:"title"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Build returns the chart of the given kind.
func Build(kind Kind, records []record.LogRecord) (*Chart, error) {
	switch kind {
	case KindVolume:
		return Volume(records), nil
	case KindLevels:
		return Levels(records), nil
	case KindTopErrors:
		return TopErrors(records), nil
	case KindAnomaly:
		return Anomaly(records), nil
	case KindCritical:
		return Critical(records), nil
	case KindErrorTrend:
		return ErrorTrend(records), nil
	default:
		return nil, fmt.Errorf("unknown chart kind %q", kind)
	}
}

// Volume counts records per calendar day.
func Volume(records []record.LogRecord) *Chart {
	c := newCounter()
	for _, r := range records {
		c.add(dayLabel(r.Timestamp))
	}
	return c.chart(KindVolume, "line", "Log Volume", "Log Volume")
}

// Levels counts records per level.
func Levels(records []record.LogRecord) *Chart {
	c := newCounter()
	for _, r := range records {
		c.add(r.LevelOrUnknown())
	}
	return c.chart(KindLevels, "bar", "Log Count by Level", "Log Count by Level")
}

// topErrorLimit is the number of messages shown by TopErrors.
const topErrorLimit = 5

// TopErrors counts the most frequent ERROR and CRITICAL messages.
func TopErrors(records []record.LogRecord) *Chart {
	c := newCounter()
	for _, r := range records {
		if !isError(r) {
			continue
		}
		msg := r.Display()
		if msg == "" {
			msg = "Unknown"
		}
		c.add(msg)
	}

	c.sortByCount()
	c.truncate(topErrorLimit)
	return c.chart(KindTopErrors, "bar", "Top Error Sources", "Top Error Sources")
}

// Anomaly counts all records and error records per UTC hour, with hours
// in chronological order. Records without a parseable timestamp are left
// out.
func Anomaly(records []record.LogRecord) *Chart {
	totals := make(map[string]int)
	errs := make(map[string]int)

	for _, r := range records {
		t, ok := timestamp.Parse(r.Timestamp)
		if !ok {
			continue
		}
		hour := t.UTC().Format("2006-01-02T15")
		totals[hour]++
		if isError(r) {
			errs[hour]++
		}
	}

	labels := make([]string, 0, len(totals))
	for h := range totals {
		labels = append(labels, h)
	}
	sort.Strings(labels)

	total := Dataset{Label: "Logs per Hour", Data: make([]int, len(labels))}
	errors := Dataset{Label: "Errors per Hour", Data: make([]int, len(labels))}
	for i, h := range labels {
		total.Data[i] = totals[h]
		errors.Data[i] = errs[h]
	}

	return &Chart{
		Kind:     KindAnomaly,
		Type:     "line",
		Title:    "Hourly Volume and Errors",
		Labels:   labels,
		Datasets: []Dataset{total, errors},
	}
}

// Critical splits records into CRITICAL and everything else.
func Critical(records []record.LogRecord) *Chart {
	var critical int
	for _, r := range records {
		if r.Level == record.LevelCritical {
			critical++
		}
	}
	return &Chart{
		Kind:   KindCritical,
		Type:   "doughnut",
		Title:  "Critical vs Non-Critical Logs",
		Labels: []string{"Critical", "Non-Critical"},
		Datasets: []Dataset{{
			Label: "Records",
			Data:  []int{critical, len(records) - critical},
		}},
	}
}

// ErrorTrend counts ERROR and CRITICAL records per day, taking the day
// from the timestamp text before any "T".
func ErrorTrend(records []record.LogRecord) *Chart {
	c := newCounter()
	for _, r := range records {
		if !isError(r) {
			continue
		}
		day := "Unknown"
		if r.Timestamp != "" {
			day, _, _ = strings.Cut(r.Timestamp, "T")
		}
		c.add(day)
	}
	return c.chart(KindErrorTrend, "line", "Error Trend Over Time", "Errors per Day")
}

// Max returns the largest value across all datasets.
func (c *Chart) Max() int {
	var m int
	for _, ds := range c.Datasets {
		for _, v := range ds.Data {
			m = max(m, v)
		}
	}
	return m
}

func isError(r record.LogRecord) bool {
	return r.Level == record.LevelError || r.Level == record.LevelCritical
}

func dayLabel(ts string) string {
	t, ok := timestamp.Parse(ts)
	if !ok {
		return "Invalid Date"
	}
	return t.Format("2006-01-02")
}

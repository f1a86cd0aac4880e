// Package output renders log views, summaries, charts, and CSV exports.
package output

import (
	"time"

	"github.com/ccollicutt/logview/pkg/aggregator"
	"github.com/ccollicutt/logview/pkg/filter"
	"github.com/ccollicutt/logview/pkg/parser"
	"github.com/ccollicutt/logview/pkg/record"
	"github.com/ccollicutt/logview/pkg/session"
	"github.com/ccollicutt/logview/pkg/summary"
)

// View is one rendered page of a session.
type View struct {
	// Records is the current page.
	Records []record.LogRecord `json:"records"`

	// Page describes the position within the filtered records.
	Page session.PageInfo `json:"page"`

	// Summary covers every filtered record, not just the page.
	Summary summary.Summary `json:"summary"`

	// Metadata provides context about the load.
	Metadata Metadata `json:"metadata"`
}

// Metadata provides context about how the records were loaded.
type Metadata struct {
	// SessionID identifies the session that produced the view.
	SessionID string `json:"session_id"`

	// Directory is the log directory that was read.
	Directory string `json:"directory"`

	// FileType is the file type filter in effect.
	FileType aggregator.FileType `json:"file_type"`

	// Files lists the files read, in aggregation order.
	Files []string `json:"files"`

	// ReadErrors lists files that could not be read.
	ReadErrors []string `json:"read_errors,omitempty"`

	// Parse counts records and lines that failed to parse.
	Parse parser.Stats `json:"parse"`

	// Filter is the criteria applied.
	Filter Filter `json:"filter"`

	// LoadedAt is when the records were aggregated.
	LoadedAt time.Time `json:"loaded_at"`

	// Duration is how long aggregation took.
	Duration time.Duration `json:"duration"`
}

// Filter is the printable form of filter criteria.
type Filter struct {
	Query string     `json:"query,omitempty"`
	Level string     `json:"level,omitempty"`
	From  *time.Time `json:"from,omitempty"`
	To    *time.Time `json:"to,omitempty"`
}

// NewView builds the view of the session's current page.
func NewView(s *session.Session) *View {
	c := s.Criteria()
	view := &View{
		Records: s.Page(),
		Page:    s.PageInfo(),
		Summary: summary.Compute(s.Filtered()),
		Metadata: Metadata{
			SessionID: s.ID(),
			Directory: s.Directory().Name(),
			Filter:    newFilter(c),
		},
	}

	if result := s.LastResult(); result != nil {
		view.Metadata.Files = result.Files
		view.Metadata.Parse = result.Parse
		view.Metadata.LoadedAt = result.EndTime
		view.Metadata.Duration = result.Duration()
		for _, re := range result.ReadErrors {
			view.Metadata.ReadErrors = append(view.Metadata.ReadErrors, re.Error())
		}
	}

	return view
}

func newFilter(c filter.Criteria) Filter {
	return Filter{Query: c.Query, Level: c.Level, From: c.From, To: c.To}
}

// IsZero reports whether no filter is applied.
func (f Filter) IsZero() bool {
	return f.Query == "" && f.Level == "" && f.From == nil && f.To == nil
}

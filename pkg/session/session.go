// Package session owns the state of one log view: the aggregated records,
// the active filter, and the current page. A session is created when a
// directory is selected and is replaced wholesale by reloads.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ccollicutt/logview/pkg/aggregator"
	"github.com/ccollicutt/logview/pkg/filter"
	"github.com/ccollicutt/logview/pkg/record"
	"github.com/ccollicutt/logview/pkg/source"
)

// DefaultPageSize is the number of records per page.
const DefaultPageSize = 5

// ErrReloadInProgress is returned when a reload is requested while
// another one is still running.
var ErrReloadInProgress = errors.New("reload already in progress")

// PageInfo describes the current page of the filtered view.
type PageInfo struct {
	Page     int `json:"page"`
	Pages    int `json:"pages"`
	PageSize int `json:"page_size"`
	Matched  int `json:"matched"`
	Total    int `json:"total"`
}

// String renders the page position as "Page X of Y".
func (p PageInfo) String() string {
	return fmt.Sprintf("Page %d of %d", p.Page, p.Pages)
}

// Session is the state of one log view.
type Session struct {
	id  string
	dir source.Directory
	agg *aggregator.Aggregator
	log logrus.FieldLogger

	// reloading serializes aggregation passes.
	reloading sync.Mutex

	mu       sync.RWMutex
	records  []record.LogRecord
	filtered []record.LogRecord
	criteria filter.Criteria
	page     int
	pageSize int
	last     *aggregator.Result
}

// Option configures a Session.
type Option func(*Session)

// WithPageSize sets the number of records per page.
func WithPageSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithCriteria sets the initial filter.
func WithCriteria(c filter.Criteria) Option {
	return func(s *Session) {
		s.criteria = c
	}
}

// New creates an empty session over dir. Call Reload to load records.
func New(dir source.Directory, agg *aggregator.Aggregator, opts ...Option) *Session {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	s := &Session{
		id:       uuid.NewString(),
		dir:      dir,
		agg:      agg,
		log:      silent,
		page:     1,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("session", s.id)
	return s
}

// ID returns the unique session identifier.
func (s *Session) ID() string {
	return s.id
}

// Directory returns the directory the session reads.
func (s *Session) Directory() source.Directory {
	return s.dir
}

// Reload aggregates the directory again and replaces the record set,
// then re-applies the active filter and returns to the first page. On
// error the previous state is kept. A reload requested while another is
// running is skipped with ErrReloadInProgress.
func (s *Session) Reload(ctx context.Context) (*aggregator.Result, error) {
	if !s.reloading.TryLock() {
		return nil, ErrReloadInProgress
	}
	defer s.reloading.Unlock()

	result, err := s.agg.Aggregate(ctx, s.dir)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.records = result.Records
	s.last = result
	s.applyLocked()
	matched := len(s.filtered)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"records": len(result.Records),
		"matched": matched,
		"files":   len(result.Files),
	}).Info("logs reloaded")

	return result, nil
}

// SetFilter applies new criteria and returns to the first page.
func (s *Session) SetFilter(c filter.Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = c
	s.applyLocked()
}

// applyLocked recomputes the filtered view. Filtering always resets
// pagination. Callers must hold mu.
func (s *Session) applyLocked() {
	s.filtered = filter.Apply(s.records, s.criteria)
	s.page = 1
}

// Criteria returns the active filter.
func (s *Session) Criteria() filter.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// Records returns every loaded record.
func (s *Session) Records() []record.LogRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Filtered returns the records matching the active filter.
func (s *Session) Filtered() []record.LogRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filtered
}

// LastResult returns the most recent successful aggregation, or nil.
func (s *Session) LastResult() *aggregator.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Page returns the records on the current page.
func (s *Session) Page() []record.LogRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := (s.page - 1) * s.pageSize
	if start >= len(s.filtered) {
		return nil
	}
	end := min(start+s.pageSize, len(s.filtered))
	out := make([]record.LogRecord, end-start)
	copy(out, s.filtered[start:end])
	return out
}

// PageInfo describes the current page.
func (s *Session) PageInfo() PageInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return PageInfo{
		Page:     s.page,
		Pages:    s.pagesLocked(),
		PageSize: s.pageSize,
		Matched:  len(s.filtered),
		Total:    len(s.records),
	}
}

// NextPage advances one page. It reports false on the last page.
func (s *Session) NextPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page*s.pageSize >= len(s.filtered) {
		return false
	}
	s.page++
	return true
}

// PrevPage goes back one page. It reports false on the first page.
func (s *Session) PrevPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page <= 1 {
		return false
	}
	s.page--
	return true
}

// GoTo jumps to page n (1-based).
func (s *Session) GoTo(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pages := s.pagesLocked(); n < 1 || n > pages {
		return fmt.Errorf("page %d out of range (1-%d)", n, pages)
	}
	s.page = n
	return nil
}

// pagesLocked returns the page count, at least 1.
func (s *Session) pagesLocked() int {
	pages := (len(s.filtered) + s.pageSize - 1) / s.pageSize
	return max(pages, 1)
}

package aggregator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ccollicutt/logview/pkg/parser"
	"github.com/ccollicutt/logview/pkg/record"
	"github.com/ccollicutt/logview/pkg/source"
)

// DefaultConcurrency is the number of files read at once.
const DefaultConcurrency = 4

// Aggregator reads the log files of a directory and merges their records.
type Aggregator struct {
	fileType    FileType
	exclude     []string
	concurrency int
	log         logrus.FieldLogger
}

// Option configures aggregator behavior.
type Option func(*Aggregator)

// WithFileType limits aggregation to one log format.
func WithFileType(t FileType) Option {
	return func(a *Aggregator) {
		a.fileType = t
	}
}

// WithExclude skips files whose names match any of the glob patterns.
func WithExclude(patterns []string) Option {
	return func(a *Aggregator) {
		a.exclude = append(a.exclude, patterns...)
	}
}

// WithConcurrency sets how many files are read at once.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithLogger sets the logger used for skipped files and parse failures.
func WithLogger(log logrus.FieldLogger) Option {
	return func(a *Aggregator) {
		if log != nil {
			a.log = log
		}
	}
}

// New creates an Aggregator. It fails on an invalid file type or
// exclude pattern.
func New(opts ...Option) (*Aggregator, error) {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	a := &Aggregator{
		fileType:    FileTypeBoth,
		concurrency: DefaultConcurrency,
		log:         silent,
	}
	for _, opt := range opts {
		opt(a)
	}

	if _, err := ParseFileType(string(a.fileType)); err != nil {
		return nil, err
	}
	for _, p := range a.exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}

	return a, nil
}

// FileType returns the configured type filter.
func (a *Aggregator) FileType() FileType {
	return a.fileType
}

// Aggregate reads every matching file of dir and returns their records.
// It fails only when the directory itself cannot be accessed or listed;
// unreadable files are reported in Result.ReadErrors.
func (a *Aggregator) Aggregate(ctx context.Context, dir source.Directory) (*Result, error) {
	result := &Result{StartTime: time.Now()}

	if err := source.VerifyAccess(ctx, dir); err != nil {
		return nil, &PermissionError{Directory: dir.Name(), Err: err}
	}

	files, err := a.selectFiles(ctx, dir)
	if err != nil {
		return nil, err
	}
	result.Files = files

	type fileResult struct {
		records []record.LogRecord
		stats   parser.Stats
		err     error
	}
	parsed := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i, name := range files {
		g.Go(func() error {
			content, err := dir.ReadFile(gctx, name)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				parsed[i].err = err
				return nil
			}

			p := parser.ForFile(name)
			parsed[i].records, parsed[i].stats = p.Parse(name, content)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregating %s: %w", dir.Name(), err)
	}

	// Gather-then-order: concatenate in sorted file order regardless
	// of which read finished first.
	for i, name := range files {
		fr := parsed[i]
		if fr.err != nil {
			readErr := &ReadError{File: name, Err: fr.err}
			result.ReadErrors = append(result.ReadErrors, readErr)
			a.log.WithField("file", name).WithError(fr.err).Warn("skipping unreadable log file")
			continue
		}
		if fr.stats.Failed > 0 {
			a.log.WithFields(logrus.Fields{
				"file":   name,
				"failed": fr.stats.Failed,
			}).Debug("lines kept as UNKNOWN records")
		}
		result.Records = append(result.Records, fr.records...)
		result.Parse.Add(fr.stats)
	}

	result.EndTime = time.Now()

	a.log.WithFields(logrus.Fields{
		"directory": dir.Name(),
		"files":     len(files),
		"records":   len(result.Records),
		"skipped":   len(result.ReadErrors),
		"duration":  result.Duration().Round(time.Millisecond),
	}).Debug("aggregation complete")

	return result, nil
}

// selectFiles lists the regular files that pass the type filter and
// exclude patterns, sorted by name descending so date-named files
// surface newest first.
func (a *Aggregator) selectFiles(ctx context.Context, dir source.Directory) ([]string, error) {
	entries, err := dir.Entries(ctx)
	if err != nil {
		if errors.Is(err, source.ErrPermissionDenied) {
			return nil, &PermissionError{Directory: dir.Name(), Err: err}
		}
		return nil, fmt.Errorf("listing log directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.Kind != source.KindFile {
			continue
		}
		if !a.fileType.Accepts(e.Name) || a.Excluded(e.Name) {
			continue
		}
		files = append(files, e.Name)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	return files, nil
}

// Excluded reports whether name matches an exclude pattern.
func (a *Aggregator) Excluded(name string) bool {
	for _, p := range a.exclude {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

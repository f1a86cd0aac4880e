// Package watcher turns file system notifications in a log directory into
// coalesced reload triggers.
package watcher

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/ccollicutt/logview/pkg/aggregator"
)

// DefaultDebounce is the quiet period after the last event before a
// trigger fires.
const DefaultDebounce = 500 * time.Millisecond

// Event is a relevant change to a log file.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watcher monitors one directory for changes to log files.
type Watcher struct {
	fsw      *fsnotify.Watcher
	dir      string
	fileType aggregator.FileType
	exclude  []string
	debounce time.Duration
	log      logrus.FieldLogger

	// Triggers receives one value per burst of changes. It is buffered
	// with capacity one, so pending triggers coalesce.
	Triggers chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithFileType limits events to the files the aggregator would read.
func WithFileType(t aggregator.FileType) Option {
	return func(w *Watcher) {
		w.fileType = t
	}
}

// WithExclude ignores file names matching any doublestar pattern.
func WithExclude(patterns []string) Option {
	return func(w *Watcher) {
		w.exclude = patterns
	}
}

// WithDebounce sets the quiet period.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the watcher logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(w *Watcher) {
		if log != nil {
			w.log = log
		}
	}
}

// New creates a Watcher for dir.
func New(dir string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	silent := logrus.New()
	silent.SetOutput(io.Discard)

	w := &Watcher{
		dir:      abs,
		fileType: aggregator.FileTypeBoth,
		debounce: DefaultDebounce,
		log:      silent,
		Triggers: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(abs); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("cannot watch %s: %w", abs, err)
	}
	w.fsw = fsw
	return w, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Start listens for events until ctx is cancelled, then closes the
// underlying watcher.
func (w *Watcher) Start(ctx context.Context) {
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.WithFields(logrus.Fields{
				"file": filepath.Base(ev.Name),
				"op":   ev.Op.String(),
			}).Debug("log file changed")
			timer.Reset(w.debounce)
		case <-timer.C:
			select {
			case w.Triggers <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("watcher error")
		}
	}
}

// relevant reports whether ev touches a log file the aggregator reads.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if filepath.Dir(ev.Name) != w.dir {
		return false
	}
	return w.Match(filepath.Base(ev.Name))
}

// Match reports whether a file name would trigger a reload.
func (w *Watcher) Match(name string) bool {
	if !w.fileType.Accepts(name) {
		return false
	}
	for _, pattern := range w.exclude {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return false
		}
	}
	return true
}

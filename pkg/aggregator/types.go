// Package aggregator reads a directory of log files into one ordered
// record sequence.
package aggregator

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/ccollicutt/logview/pkg/parser"
	"github.com/ccollicutt/logview/pkg/record"
)

// ErrInvalidFileType is returned for an unknown file type filter.
var ErrInvalidFileType = errors.New("invalid file type")

// FileType selects which log formats are aggregated.
type FileType string

const (
	FileTypeText FileType = "txt"
	FileTypeJSON FileType = "json"
	FileTypeBoth FileType = "both"
)

// ParseFileType validates a file type name. Empty means both.
func ParseFileType(s string) (FileType, error) {
	switch FileType(strings.ToLower(strings.TrimSpace(s))) {
	case FileTypeText:
		return FileTypeText, nil
	case FileTypeJSON:
		return FileTypeJSON, nil
	case FileTypeBoth, "":
		return FileTypeBoth, nil
	default:
		return "", fmt.Errorf("%w %q (must be txt, json, or both)", ErrInvalidFileType, s)
	}
}

// Accepts reports whether a file name passes the type filter.
// Matching is on the exact lowercase suffix, as log tooling writes it.
func (t FileType) Accepts(name string) bool {
	isText := strings.HasSuffix(name, parser.ExtText)
	isJSON := strings.HasSuffix(name, parser.ExtJSON)

	switch t {
	case FileTypeText:
		return isText
	case FileTypeJSON:
		return isJSON
	case FileTypeBoth:
		return isText || isJSON
	default:
		return false
	}
}

// PermissionError means the directory could not be accessed at all.
// Nothing was aggregated.
type PermissionError struct {
	Directory string
	Err       error
}

func (e *PermissionError) Error() string {
	if errors.Is(e.Err, fs.ErrNotExist) {
		return fmt.Sprintf("log directory %s not found", e.Directory)
	}
	return fmt.Sprintf("access to %s not granted: %v", e.Directory, e.Err)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

// ReadError records a single file that could not be read. The file is
// skipped and aggregation continues.
type ReadError struct {
	File string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.File, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Result is the outcome of one aggregation pass.
type Result struct {
	// Records holds every record, files in descending name order and
	// records in content order within a file.
	Records []record.LogRecord

	// Files lists the files that were read, in aggregation order.
	Files []string

	// ReadErrors lists the files that were skipped.
	ReadErrors []*ReadError

	// Parse totals the per-file parser statistics.
	Parse parser.Stats

	// StartTime is when aggregation began.
	StartTime time.Time

	// EndTime is when aggregation completed.
	EndTime time.Time
}

// Duration returns how long the aggregation took.
func (r *Result) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

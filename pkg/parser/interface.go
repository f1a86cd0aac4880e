package parser

import (
	"path"
	"strings"

	"github.com/ccollicutt/logview/pkg/record"
)

// Parser turns the full content of one log file into records.
// Implementations never fail: unparseable input is dropped or
// converted into placeholder records.
type Parser interface {
	// Parse returns the records found in content, in content order.
	// source is the file name stamped onto each record.
	Parse(source, content string) ([]record.LogRecord, Stats)

	// Name returns the format name (text, jsonl).
	Name() string
}

// File extensions understood by ForFile.
const (
	ExtText = ".txt"
	ExtJSON = ".json"
)

// ForFile returns the parser for a file name, or nil if the extension
// is not a supported log format.
func ForFile(name string) Parser {
	switch strings.ToLower(path.Ext(name)) {
	case ExtText:
		return NewTextParser()
	case ExtJSON:
		return NewJSONLinesParser()
	default:
		return nil
	}
}

package parser

import (
	"regexp"
	"strings"

	"github.com/ccollicutt/logview/pkg/record"
)

// entryHeader matches the "[timestamp] [level] " head of an entry. The
// head may be preceded by text without a '[' starting at a line start, and
// never extends past the end of its line, so an entry may have no body.
var entryHeader = regexp.MustCompile(`(?m)^[^\[\n]*\[(.*?)\][ \t]+\[(.*?)\](?:[ \t]+|\r?$)`)

// entryBoundary ends a message body: a newline directly followed by '['.
const entryBoundary = "\n["

// TextParser handles bracketed plain-text logs:
//
//	[2024-06-01T10:00:00Z] [ERROR] disk full
//
// A body runs until the next line starting with '[' or end of input, so
// continuation lines (stack traces) stay with their entry.
type TextParser struct {
	header *regexp.Regexp
}

// NewTextParser creates a parser for bracketed text logs.
func NewTextParser() *TextParser {
	return &TextParser{header: entryHeader}
}

// Name returns the format name.
func (p *TextParser) Name() string {
	return "text"
}

// Parse extracts every entry from content. Text that never matches the
// bracket pattern is dropped.
func (p *TextParser) Parse(source, content string) ([]record.LogRecord, Stats) {
	var records []record.LogRecord

	// pos is always 0 or just past a newline, so '^' in the header
	// pattern only matches at real line starts.
	pos := 0
	for pos < len(content) {
		loc := p.header.FindStringSubmatchIndex(content[pos:])
		if loc == nil {
			break
		}

		start := pos + loc[0]
		bodyStart := pos + loc[1]
		end := len(content)
		if i := strings.Index(content[bodyStart:], entryBoundary); i >= 0 {
			end = bodyStart + i
		}

		records = append(records, record.LogRecord{
			Timestamp: content[pos+loc[2] : pos+loc[3]],
			Level:     content[pos+loc[4] : pos+loc[5]],
			Message:   strings.TrimSpace(content[bodyStart:end]),
			Raw:       strings.TrimSpace(content[start:end]),
			Source:    source,
		})

		pos = end + 1
	}

	return records, Stats{Records: len(records)}
}

package parser

import (
	"strings"

	"github.com/valyala/fastjson"

	"github.com/ccollicutt/logview/pkg/record"
)

// parserPool is shared by all JSON-lines parsers; fastjson parsers are
// not safe for concurrent use but can be recycled.
var parserPool fastjson.ParserPool

// JSONLinesParser handles newline-delimited JSON logs. Each non-blank
// line is decoded on its own; the fields timestamp, level and message
// are copied into the record.
type JSONLinesParser struct {
	pool *fastjson.ParserPool
}

// NewJSONLinesParser creates a parser for newline-delimited JSON logs.
func NewJSONLinesParser() *JSONLinesParser {
	return &JSONLinesParser{pool: &parserPool}
}

// Name returns the format name.
func (p *JSONLinesParser) Name() string {
	return "jsonl"
}

// Parse decodes every non-blank line. A line that is not valid JSON
// becomes an UNKNOWN record carrying the line as message and raw text,
// so the record count always equals the non-blank line count.
func (p *JSONLinesParser) Parse(source, content string) ([]record.LogRecord, Stats) {
	var (
		records []record.LogRecord
		stats   Stats
	)

	fp := p.pool.Get()
	defer p.pool.Put(fp)

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		v, err := fp.Parse(line)
		if err != nil {
			stats.Failed++
			records = append(records, record.LogRecord{
				Level:   record.LevelUnknown,
				Message: line,
				Raw:     line,
				Source:  source,
			})
			continue
		}

		records = append(records, record.LogRecord{
			Timestamp: stringField(v, "timestamp"),
			Level:     stringField(v, "level"),
			Message:   stringField(v, "message"),
			Raw:       line,
			Source:    source,
		})
	}

	stats.Records = len(records)
	return records, stats
}

// stringField returns a top-level field as a string. Strings are copied
// as-is, null and missing fields are empty, anything else is rendered as
// its JSON text.
func stringField(v *fastjson.Value, key string) string {
	f := v.Get(key)
	if f == nil {
		return ""
	}
	switch f.Type() {
	case fastjson.TypeString:
		return string(f.GetStringBytes())
	case fastjson.TypeNull:
		return ""
	default:
		return f.String()
	}
}

package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/ccollicutt/logview/pkg/record"
)

// DefaultExportFile is the file name used when exporting without one.
const DefaultExportFile = "filtered_logs.csv"

// CSVHeader is the column header written when requested.
var CSVHeader = []string{"timestamp", "level", "message"}

// CSVOptions controls CSV export.
type CSVOptions struct {
	// Header writes a column header row first.
	Header bool

	// Zstd compresses the output stream.
	Zstd bool
}

// ExportCSV writes records as CSV. Every field is double-quoted with
// embedded quotes doubled, and rows are separated by a bare newline.
// The message column falls back to the raw text.
func ExportCSV(w io.Writer, records []record.LogRecord, opts CSVOptions) error {
	if opts.Zstd {
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("creating zstd encoder: %w", err)
		}
		if err := writeCSV(enc, records, opts.Header); err != nil {
			enc.Close()
			return err
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("flushing zstd stream: %w", err)
		}
		return nil
	}
	return writeCSV(w, records, opts.Header)
}

func writeCSV(w io.Writer, records []record.LogRecord, header bool) error {
	bw := bufio.NewWriter(w)
	first := true

	writeRow := func(fields ...string) {
		if !first {
			bw.WriteByte('\n')
		}
		first = false
		for i, field := range fields {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(quoteField(field))
		}
	}

	if header {
		writeRow(CSVHeader...)
	}
	for _, r := range records {
		writeRow(r.Timestamp, r.Level, r.Display())
	}
	if !first {
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

package output

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ccollicutt/logview/pkg/record"
	"github.com/ccollicutt/logview/pkg/summary"
)

var levelEmoji = map[string]string{
	record.LevelDebug:    "🔍",
	record.LevelInfo:     "✅",
	record.LevelWarning:  "⚠️",
	record.LevelError:    "❌",
	record.LevelCritical: "🔥",
}

var (
	styleDebug     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
	styleInfo      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleWarning   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleError     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleCritical  = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("196")).Bold(true)
	styleTimestamp = lipgloss.NewStyle().Bold(true)
	styleSource    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Faint(true)
	styleHeader    = lipgloss.NewStyle().Bold(true).Underline(true)
)

// TextFormatter formats views as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the view as text.
func (f *TextFormatter) Format(ctx context.Context, view *View, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(view, w)
	}
	return f.formatFull(view, w)
}

func (f *TextFormatter) formatQuiet(view *View, w io.Writer) error {
	_, err := fmt.Fprintln(w, SummaryLine(view.Summary))
	return err
}

func (f *TextFormatter) formatFull(view *View, w io.Writer) error {
	fmt.Fprintln(w, styleHeader.Render("=== Logs: "+view.Metadata.Directory+" ==="))
	fmt.Fprintln(w)

	if len(view.Records) == 0 {
		fmt.Fprintln(w, "No matching log entries")
		fmt.Fprintln(w)
	}

	for _, r := range view.Records {
		f.formatRecord(r, w)
	}

	fmt.Fprintln(w, view.Page.String())
	fmt.Fprintln(w, "---")
	if err := FormatSummary(view.Summary, w); err != nil {
		return err
	}

	if f.opts.Verbose {
		m := view.Metadata
		fmt.Fprintf(w, "Session: %s\n", m.SessionID)
		fmt.Fprintf(w, "Files: %s\n", strings.Join(m.Files, ", "))
		fmt.Fprintf(w, "Parse failures: %d\n", m.Parse.Failed)
		for _, e := range m.ReadErrors {
			fmt.Fprintf(w, "Skipped: %s\n", e)
		}
		if !m.Filter.IsZero() {
			fmt.Fprintf(w, "Filter: %s\n", describeFilter(m.Filter))
		}
		fmt.Fprintf(w, "Duration: %s\n", m.Duration.Round(time.Millisecond))
	}

	return nil
}

func (f *TextFormatter) formatRecord(r record.LogRecord, w io.Writer) {
	level := strings.ToUpper(r.LevelOrUnknown())
	tag := "[" + level + "]"
	if emoji, ok := levelEmoji[level]; ok {
		tag = emoji + " " + tag
	}

	fmt.Fprintf(w, "%s %s\n", styleTimestamp.Render(r.Timestamp), LevelStyle(level).Render(tag))
	if f.opts.Verbose && r.Source != "" {
		fmt.Fprintf(w, "  %s\n", styleSource.Render(r.Source))
	}
	for _, line := range strings.Split(r.Display(), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w)
}

// LevelStyle returns the terminal style for a level.
func LevelStyle(level string) lipgloss.Style {
	switch level {
	case record.LevelDebug:
		return styleDebug
	case record.LevelInfo:
		return styleInfo
	case record.LevelWarning:
		return styleWarning
	case record.LevelError:
		return styleError
	case record.LevelCritical:
		return styleCritical
	default:
		return lipgloss.NewStyle()
	}
}

// SummaryLine renders the summary counters on one line.
func SummaryLine(s summary.Summary) string {
	return fmt.Sprintf("Total: %d | Errors: %d | Warnings: %d | Critical: %d | Debug: %d | Error rate: %.2f%%",
		s.Total, s.Error, s.Warning, s.Critical, s.Debug, s.ErrorRate)
}

// FormatSummary renders the summary counters and top error messages.
func FormatSummary(s summary.Summary, w io.Writer) error {
	if _, err := fmt.Fprintln(w, SummaryLine(s)); err != nil {
		return err
	}
	if len(s.TopErrors) == 0 {
		return nil
	}

	fmt.Fprintln(w, "Top errors:")
	for _, e := range s.TopErrors {
		fmt.Fprintf(w, "  %4d  %s\n", e.Count, firstLine(e.Message))
	}
	return nil
}

func describeFilter(f Filter) string {
	var parts []string
	if f.Query != "" {
		parts = append(parts, fmt.Sprintf("query=%q", f.Query))
	}
	if f.Level != "" {
		parts = append(parts, "level="+f.Level)
	}
	if f.From != nil {
		parts = append(parts, "from="+f.From.Format(time.RFC3339))
	}
	if f.To != nil {
		parts = append(parts, "to="+f.To.Format(time.RFC3339))
	}
	return strings.Join(parts, " ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}

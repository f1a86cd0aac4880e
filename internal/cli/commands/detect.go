package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logview/pkg/aggregator"
	"github.com/ccollicutt/logview/pkg/timestamp"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output      string
	SampleSize  int
	ShowAll     bool
	WriteConfig string
	FileType    string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect [log-dir]",
		Short: "Detect the timestamp formats used in a log directory",
		Long: `Load a log directory and check which timestamp formats its records use.

Date filters (--from, --to, --last-days) only see records whose timestamp
parses as a date, so this reports how many records such filters would drop.

Optionally generates a starter config file with --write-config.

Supports:
  - ISO 8601 variants (with/without timezone, fractional seconds, minutes only)
  - Date only (2006-01-02)
  - Python logging format (comma milliseconds)
  - Syslog with year, Apache/NGINX common log format, RFC 1123
  - Unix timestamps (seconds and milliseconds)

Example:
  logview detect ./logs
  logview detect --all -o json ./logs
  logview detect --write-config logview.yaml ./logs`,
		Args: cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 1000, "Number of records to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all detected formats, not just the best match")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")
	addTypeFlag(cmd, &opts.FileType)

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := e.useFileType(opts.FileType); err != nil {
		return err
	}

	s, dir, err := e.newSession(args)
	if err != nil {
		return err
	}
	if _, err := s.Reload(e.ctx); err != nil {
		return fmt.Errorf("loading logs: %w", err)
	}

	d := timestamp.NewDetector(timestamp.WithSampleSize(opts.SampleSize))
	result := d.DetectRecords(s.Records())

	if opts.WriteConfig != "" {
		if err := writeStarterConfig(e.out, result, dir.Path(), e.cfg.ParsedFileType(), opts.WriteConfig); err != nil {
			return err
		}
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(e.out, result, dir.Path(), opts)
	case "text":
		return outputDetectText(e.out, result, dir.Path(), opts)
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

func outputDetectText(w io.Writer, result *timestamp.DetectionResult, dir string, opts *DetectOptions) error {
	fmt.Fprintln(w, "=== Timestamp Format Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Directory: %s\n", dir)
	fmt.Fprintf(w, "Timestamps sampled: %d\n", result.SampledValues)
	fmt.Fprintf(w, "Parsed as dates: %d (%.1f%%)\n", result.ParsedValues, result.Coverage()*100)
	if result.EmptyValues > 0 {
		fmt.Fprintf(w, "Records without a timestamp: %d\n", result.EmptyValues)
	}
	fmt.Fprintln(w)

	if !result.HasMatch() {
		fmt.Fprintln(w, "No timestamp format detected.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tip: Date filters will exclude every record while --from, --to or --last-days is set.")
		printUnparsed(w, result)
		return nil
	}

	best := result.BestMatch()
	fmt.Fprintf(w, "Detected Format: %s\n", best.Format.Name)
	fmt.Fprintf(w, "Confidence: %.1f%% (%d/%d timestamps matched)\n",
		best.Confidence*100, best.MatchCount, result.SampledValues)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sample match:\n  %s\n", best.Sample)
	fmt.Fprintf(w, "Parsed as: %s\n", best.ParsedTime.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintln(w)

	if result.AmbiguityNote != "" {
		fmt.Fprintf(w, "Note: %s\n", result.AmbiguityNote)
		fmt.Fprintln(w)
	}

	if opts.ShowAll && len(result.Matches) > 1 {
		fmt.Fprintln(w, "--- Alternative formats detected ---")
		for i, m := range result.Matches[1:] {
			fmt.Fprintf(w, "%d. %s (%.1f%% confidence)\n", i+2, m.Format.Name, m.Confidence*100)
			fmt.Fprintf(w, "   sample: %s\n", m.Sample)
		}
		fmt.Fprintln(w)
	}

	printUnparsed(w, result)
	return nil
}

func printUnparsed(w io.Writer, result *timestamp.DetectionResult) {
	if len(result.Unparsed) == 0 {
		return
	}
	fmt.Fprintln(w, "Unparsed timestamps (excluded by date filters):")
	for _, v := range result.Unparsed {
		fmt.Fprintf(w, "  %s\n", v)
	}
}

// JSONMatch represents a format match in JSON output.
type JSONMatch struct {
	Name       string  `json:"name"`
	Pattern    string  `json:"pattern"`
	Layout     string  `json:"layout"`
	Confidence float64 `json:"confidence"`
	MatchCount int     `json:"match_count"`
	Sample     string  `json:"sample"`
	Ambiguous  bool    `json:"ambiguous,omitempty"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	Directory     string      `json:"directory"`
	Matches       []JSONMatch `json:"matches"`
	SampledValues int         `json:"sampled_values"`
	ParsedValues  int         `json:"parsed_values"`
	EmptyValues   int         `json:"empty_values"`
	Unparsed      []string    `json:"unparsed,omitempty"`
	AmbiguityNote string      `json:"ambiguity_note,omitempty"`
}

func outputDetectJSON(w io.Writer, result *timestamp.DetectionResult, dir string, opts *DetectOptions) error {
	out := JSONOutput{
		Directory:     dir,
		SampledValues: result.SampledValues,
		ParsedValues:  result.ParsedValues,
		EmptyValues:   result.EmptyValues,
		Unparsed:      result.Unparsed,
		AmbiguityNote: result.AmbiguityNote,
		Matches:       make([]JSONMatch, 0),
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1] // Only show best match
	}

	for _, m := range matches {
		out.Matches = append(out.Matches, JSONMatch{
			Name:       m.Format.Name,
			Pattern:    m.Format.PatternStr,
			Layout:     m.Format.Layout,
			Confidence: m.Confidence,
			MatchCount: m.MatchCount,
			Sample:     m.Sample,
			Ambiguous:  m.Format.Ambiguous,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// writeStarterConfig generates a starter config file for the directory.
func writeStarterConfig(w io.Writer, result *timestamp.DetectionResult, dir string, fileType aggregator.FileType, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	config := generateStarterConfig(dir, fileType, result.BestMatch())

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(w, "Wrote starter config to: %s\n\n", configPath)
	return nil
}

// generateStarterConfig creates a YAML config template.
func generateStarterConfig(dir string, fileType aggregator.FileType, match *timestamp.FormatMatch) string {
	detected := "none"
	if match != nil {
		detected = fmt.Sprintf("%s (%.0f%% confidence)", match.Format.Name, match.Confidence*100)
	}

	return fmt.Sprintf(`# logview configuration
# Generated by: logview detect
# Detected timestamp format: %s

directory: %s

# Which files to read: txt, json, or both
file_type: %s

# File names to skip (doublestar patterns)
exclude: []
#  - "*.tmp.json"

page_size: 5
poll_interval: 30s
concurrency: 4
`, detected, dir, fileType)
}

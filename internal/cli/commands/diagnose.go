package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logview/pkg/aggregator"
	"github.com/ccollicutt/logview/pkg/config"
	"github.com/ccollicutt/logview/pkg/parser"
	"github.com/ccollicutt/logview/pkg/record"
	"github.com/ccollicutt/logview/pkg/source"
	"github.com/ccollicutt/logview/pkg/timestamp"
)

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Verbose bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose [log-dir]",
		Short: "Diagnose why logs are missing from the view",
		Long: `Diagnose common setup problems.

This command checks:
- Config file syntax and values (when --config is given)
- Log directory existence and permissions
- Which files are read, skipped by type, or excluded
- Text files with no "[timestamp] [level] message" entries
- JSON lines that fail to parse
- Timestamps that date filters cannot interpret

Example:
  logview diagnose ./logs
  logview diagnose -v --config logview.yaml`,
		Args: cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runDiagnose(ctx, cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(ctx context.Context, w io.Writer, args []string, opts *DiagnoseOptions) error {
	results := []DiagnosticResult{}

	// 1. Configuration
	var cfg *config.Config
	if Global.ConfigPath != "" {
		result := checkConfigExists(Global.ConfigPath)
		results = append(results, result)
		if result.Status == "error" {
			printDiagnostics(w, results, opts)
			return nil
		}

		var parsed *config.Config
		parsed, result = checkConfigParseable(Global.ConfigPath)
		results = append(results, result)
		if result.Status == "error" {
			printDiagnostics(w, results, opts)
			return nil
		}
		cfg = parsed
	} else {
		loaded, err := config.LoadOrDefault(ctx, "")
		if err != nil {
			results = append(results, DiagnosticResult{
				Check:   "Config",
				Status:  "error",
				Message: fmt.Sprintf("Invalid environment overrides: %v", err),
			})
			printDiagnostics(w, results, opts)
			return nil
		}
		cfg = loaded
	}

	// 2. Directory
	e := &env{ctx: ctx, cfg: cfg, log: newDiscardLogger()}
	path, err := e.resolveDir(args)
	if err != nil {
		results = append(results, DiagnosticResult{
			Check:   "Log Directory",
			Status:  "error",
			Message: err.Error(),
			Suggests: []string{
				"Pass the directory as an argument",
				"Run 'logview open <dir>' to remember one",
			},
		})
		printDiagnostics(w, results, opts)
		return nil
	}

	dir, result := checkDirectory(ctx, path)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	// 3. File selection
	agg, err := e.newAggregator()
	if err != nil {
		return err
	}
	files, result := checkFileSelection(ctx, dir, agg)
	results = append(results, result)

	// 4. Per-file parsing
	records, fileResults := checkFiles(ctx, dir, files)
	results = append(results, fileResults...)

	// 5. Timestamps
	if len(records) > 0 {
		results = append(results, checkTimestamps(records))
	}

	printDiagnostics(w, results, opts)
	return nil
}

func checkConfigExists(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Config File",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Config file not found: %s", path)
		result.Suggests = []string{
			"Check the file path is correct",
			"Use 'logview detect <log-dir> --write-config config.yaml' to generate a starter config",
		}
		return result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access config file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		return result
	}
	if info.Size() == 0 {
		result.Status = "error"
		result.Message = "Config file is empty"
		result.Suggests = []string{
			"Use 'logview detect <log-dir> --write-config config.yaml' to generate a starter config",
		}
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found: %s (%d bytes)", path, info.Size())
	return result
}

func checkConfigParseable(path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Config Syntax",
	}

	cfg, err := config.Load(context.Background(), path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Failed to parse config: %v", err)
		if strings.Contains(err.Error(), "yaml") {
			result.Suggests = []string{
				"Check YAML syntax - ensure proper indentation (use spaces, not tabs)",
			}
		}
		return nil, result
	}

	result.Status = "ok"
	result.Message = "Config file parsed successfully"
	result.Details = []string{
		fmt.Sprintf("File type: %s", cfg.ParsedFileType()),
		fmt.Sprintf("Exclude patterns: %d", len(cfg.Exclude)),
		fmt.Sprintf("Page size: %d", cfg.PageSize),
	}
	return cfg, result
}

func checkDirectory(ctx context.Context, path string) (*source.Local, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Log Directory",
	}

	dir, err := source.NewLocal(path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Invalid path %s: %v", path, err)
		return nil, result
	}

	if err := source.VerifyAccess(ctx, dir); err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot read %s", dir.Path())
		result.Suggests = []string{
			"Check the directory exists",
			"Check read and execute permissions on the directory",
		}
		return nil, result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Readable: %s", dir.Path())
	return dir, result
}

func checkFileSelection(ctx context.Context, dir source.Directory, agg *aggregator.Aggregator) ([]string, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Log Files",
	}

	entries, err := dir.Entries(ctx)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot list directory: %v", err)
		return nil, result
	}

	var selected, excluded, otherType, subdirs []string
	for _, e := range entries {
		switch {
		case e.Kind == source.KindDirectory:
			subdirs = append(subdirs, e.Name)
		case e.Kind != source.KindFile:
			continue
		case !agg.FileType().Accepts(e.Name):
			otherType = append(otherType, e.Name)
		case agg.Excluded(e.Name):
			excluded = append(excluded, e.Name)
		default:
			selected = append(selected, e.Name)
		}
	}

	for _, name := range selected {
		result.Details = append(result.Details, "read: "+name)
	}
	for _, name := range excluded {
		result.Details = append(result.Details, "excluded: "+name)
	}
	for _, name := range otherType {
		result.Details = append(result.Details, "skipped (type): "+name)
	}
	for _, name := range subdirs {
		result.Details = append(result.Details, "skipped (subdirectory): "+name)
	}

	if len(selected) == 0 {
		result.Status = "warning"
		result.Message = fmt.Sprintf("No %s log files found", describeFileType(agg.FileType()))
		result.Suggests = []string{
			"Log files must end in .txt or .json (lowercase)",
			"Subdirectories are not searched",
		}
		if len(excluded) > 0 {
			result.Suggests = append(result.Suggests, "Check the exclude patterns in your config")
		}
		return nil, result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("%d file(s) will be read, %d excluded, %d skipped",
		len(selected), len(excluded), len(otherType)+len(subdirs))
	return selected, result
}

func checkFiles(ctx context.Context, dir source.Directory, files []string) ([]record.LogRecord, []DiagnosticResult) {
	var (
		results []DiagnosticResult
		records []record.LogRecord
	)

	for _, name := range files {
		result := DiagnosticResult{
			Check: "File: " + name,
		}

		content, err := dir.ReadFile(ctx, name)
		if err != nil {
			result.Status = "error"
			result.Message = fmt.Sprintf("Cannot read: %v", err)
			result.Suggests = []string{"Check file permissions"}
			results = append(results, result)
			continue
		}

		p := parser.ForFile(name)
		parsed, stats := p.Parse(name, content)
		records = append(records, parsed...)

		switch {
		case strings.TrimSpace(content) == "":
			result.Status = "warning"
			result.Message = "File is empty"
		case stats.Records == 0:
			result.Status = "warning"
			result.Message = "No log entries found"
			result.Details = []string{"First line: " + truncate(firstLine(content), 80)}
			if p.Name() == "text" {
				result.Suggests = []string{`Text entries must start a line as "[timestamp] [level] message"`}
			}
		case stats.Failed > 0:
			result.Status = "warning"
			result.Message = fmt.Sprintf("%d records, %d line(s) not valid JSON (shown as UNKNOWN)", stats.Records, stats.Failed)
			for _, r := range parsed {
				if r.Level == record.LevelUnknown && r.Raw == r.Message && len(result.Details) < 3 {
					result.Details = append(result.Details, truncate(r.Raw, 80))
				}
			}
		default:
			result.Status = "ok"
			result.Message = fmt.Sprintf("%d records (%s)", stats.Records, p.Name())
		}

		results = append(results, result)
	}

	return records, results
}

func checkTimestamps(records []record.LogRecord) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Timestamps",
	}

	d := timestamp.NewDetector()
	detection := d.DetectRecords(records)

	for _, m := range detection.Matches {
		result.Details = append(result.Details,
			fmt.Sprintf("%s: %d (e.g. %s)", m.Format.Name, m.MatchCount, m.Sample))
	}

	switch {
	case detection.SampledValues == 0:
		result.Status = "warning"
		result.Message = "No record has a timestamp"
		result.Suggests = []string{"Date filters will exclude every record"}
	case detection.ParsedValues < detection.SampledValues:
		result.Status = "warning"
		result.Message = fmt.Sprintf("%d of %d sampled timestamps are not recognizable dates",
			detection.SampledValues-detection.ParsedValues, detection.SampledValues)
		for _, v := range detection.Unparsed {
			result.Details = append(result.Details, "unparsed: "+v)
		}
		result.Suggests = []string{"Records with these timestamps are dropped while a date filter is active"}
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("All %d sampled timestamps parse as dates", detection.SampledValues)
	}

	if detection.AmbiguityNote != "" {
		result.Details = append(result.Details, detection.AmbiguityNote)
	}
	return result
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Fprintln(w, "=== logview Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		// Status icon
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	// Summary
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Fprintln(w, "\nFix the errors above before viewing logs.")
	} else if warnCount > 0 {
		fmt.Fprintln(w, "\nLogs can be viewed, but some entries may be missing.")
	} else {
		fmt.Fprintln(w, "\nEverything looks good!")
	}
}

func describeFileType(t aggregator.FileType) string {
	switch t {
	case aggregator.FileTypeText:
		return ".txt"
	case aggregator.FileTypeJSON:
		return ".json"
	default:
		return ".txt or .json"
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logview/pkg/output"
	"github.com/ccollicutt/logview/pkg/record"
	"github.com/ccollicutt/logview/pkg/session"
	"github.com/ccollicutt/logview/pkg/summary"
)

// SummaryOptions holds command-line options for the summary command.
type SummaryOptions struct {
	Filter FilterOptions
	Output string
	FailOn string
}

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	opts := &SummaryOptions{}

	cmd := &cobra.Command{
		Use:   "summary [log-dir]",
		Short: "Count records by level and list the top errors",
		Long: `Summarize the filtered records: totals per level, the error rate, and
the most frequent error messages.

Exit codes:
  0 - Success (or no record at or above --fail-on)
  1 - A record at or above the --fail-on level was found
  2 - Configuration or runtime error

Example:
  logview summary ./logs
  logview summary --fail-on ERROR ./logs`,
		Args: cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd, args, opts)
		},
	}

	addFilterFlags(cmd, &opts.Filter)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringVar(&opts.FailOn, "fail-on", "", "Exit 1 if any record is at or above this level")

	return cmd
}

func runSummary(cmd *cobra.Command, args []string, opts *SummaryOptions) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := e.useFileType(opts.Filter.FileType); err != nil {
		return err
	}

	failOn := strings.ToUpper(strings.TrimSpace(opts.FailOn))
	if failOn != "" && !isKnownLevel(failOn) {
		return fmt.Errorf("invalid fail-on level %q (use one of %s)", opts.FailOn, strings.Join(record.KnownLevels, ", "))
	}

	criteria, err := opts.Filter.Criteria(time.Now())
	if err != nil {
		return err
	}

	s, err := e.loadSession(args, session.WithCriteria(criteria))
	if err != nil {
		return err
	}

	sum := summary.Compute(s.Filtered())

	switch opts.Output {
	case "json":
		encoder := json.NewEncoder(e.out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(sum); err != nil {
			return err
		}
	case "text":
		if err := output.FormatSummary(sum, e.out); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}

	if failOn != "" && sum.HasLevelAtLeast(failOn) {
		ExitCode = 1
	}
	return nil
}

func isKnownLevel(level string) bool {
	for _, l := range record.KnownLevels {
		if l == level {
			return true
		}
	}
	return false
}

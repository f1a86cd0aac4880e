package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logview/pkg/output"
	"github.com/ccollicutt/logview/pkg/session"
)

// ViewOptions holds command-line options for the view command.
type ViewOptions struct {
	Filter   FilterOptions
	Output   string
	Page     int
	PageSize int
	Verbose  bool
	Quiet    bool
}

// NewViewCommand creates the view command.
func NewViewCommand() *cobra.Command {
	opts := &ViewOptions{}

	cmd := &cobra.Command{
		Use:   "view [log-dir]",
		Short: "Show one page of filtered log records",
		Long: `Load every .txt and .json log file in a directory, apply the filters,
and print one page of records with a summary of everything that matched.

Files are read in descending name order. Text files hold
"[timestamp] [level] message" entries; JSON files hold one object per line.

Example:
  logview view ./logs
  logview view --level ERROR --query timeout ./logs
  logview view --last-days 7 --page 2
  logview view -o json ./logs`,
		Args: cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args, opts)
		},
	}

	addFilterFlags(cmd, &opts.Filter)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "Page to show (1-based)")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "Records per page (default from config)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show sources and load details")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no records")

	return cmd
}

func runView(cmd *cobra.Command, args []string, opts *ViewOptions) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := e.useFileType(opts.Filter.FileType); err != nil {
		return err
	}

	criteria, err := opts.Filter.Criteria(time.Now())
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	sessionOpts := []session.Option{session.WithCriteria(criteria)}
	if opts.PageSize > 0 {
		sessionOpts = append(sessionOpts, session.WithPageSize(opts.PageSize))
	}

	s, err := e.loadSession(args, sessionOpts...)
	if err != nil {
		return err
	}

	if opts.Page != 1 {
		if err := s.GoTo(opts.Page); err != nil {
			return err
		}
	}

	if err := formatter.Format(e.ctx, output.NewView(s), e.out); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	return nil
}

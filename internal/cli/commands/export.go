package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logview/pkg/output"
	"github.com/ccollicutt/logview/pkg/session"
)

// ExportOptions holds command-line options for the export command.
type ExportOptions struct {
	Filter FilterOptions
	File   string
	Header bool
	Zstd   bool
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export [log-dir]",
		Short: "Export filtered records as CSV",
		Long: `Write every filtered record as a CSV row of timestamp, level, and message.
Every field is quoted. The message column falls back to the raw log text.

Without --file the CSV is written to stdout. Passing --file with no value
writes ` + output.DefaultExportFile + `.

Example:
  logview export --level ERROR ./logs > errors.csv
  logview export --file=errors.csv --header ./logs
  logview export --zstd --file=all.csv.zst ./logs`,
		Args: cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, opts)
		},
	}

	addFilterFlags(cmd, &opts.Filter)
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Write to this file instead of stdout")
	cmd.Flags().Lookup("file").NoOptDefVal = output.DefaultExportFile
	cmd.Flags().BoolVar(&opts.Header, "header", false, "Write a column header row")
	cmd.Flags().BoolVar(&opts.Zstd, "zstd", false, "Compress the output with zstd")

	return cmd
}

func runExport(cmd *cobra.Command, args []string, opts *ExportOptions) error {
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

	s, err := e.loadSession(args, session.WithCriteria(criteria))
	if err != nil {
		return err
	}
	records := s.Filtered()

	var w io.Writer = e.out
	if opts.File != "" && opts.File != "-" {
		f, err := os.Create(opts.File) // #nosec G304 -- user-provided output path is expected
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	csvOpts := output.CSVOptions{Header: opts.Header, Zstd: opts.Zstd}
	if err := output.ExportCSV(w, records, csvOpts); err != nil {
		return fmt.Errorf("exporting: %w", err)
	}

	if f, ok := w.(*os.File); ok && f != os.Stdout {
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing export file: %w", err)
		}
		e.log.WithField("file", opts.File).Info("export written")
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d records to %s\n", len(records), opts.File)
	}
	return nil
}

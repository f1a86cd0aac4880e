package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logview/pkg/output"
	"github.com/ccollicutt/logview/pkg/source"
	"github.com/ccollicutt/logview/pkg/state"
	"github.com/ccollicutt/logview/pkg/summary"
)

// OpenOptions holds command-line options for the open command.
type OpenOptions struct {
	Forget   bool
	FileType string
}

// NewOpenCommand creates the open command.
func NewOpenCommand() *cobra.Command {
	opts := &OpenOptions{}

	cmd := &cobra.Command{
		Use:   "open <log-dir>",
		Short: "Select a log directory and remember it",
		Long: `Check that a log directory can be read, load it once, and remember it
so later commands can omit the directory argument.

Only the directory path is stored; parsed logs are never persisted.

Example:
  logview open /var/log/myapp
  logview open --forget`,
		Args: cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Forget, "forget", false, "Forget the remembered directory")
	addTypeFlag(cmd, &opts.FileType)

	return cmd
}

func runOpen(cmd *cobra.Command, args []string, opts *OpenOptions) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := e.useFileType(opts.FileType); err != nil {
		return err
	}

	store, err := state.Open(e.cfg.StateFile)
	if err != nil {
		return err
	}

	if opts.Forget {
		store.Delete(state.KeyLogDir)
		store.Delete(state.KeyLogFullPath)
		if err := store.Save(); err != nil {
			return err
		}
		fmt.Fprintln(e.out, "Forgot remembered log directory")
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("log directory argument is required")
	}

	s, dir, err := e.newSession(args)
	if err != nil {
		return err
	}
	if err := source.VerifyAccess(e.ctx, dir); err != nil {
		return fmt.Errorf("opening %s: %w", dir.Path(), err)
	}

	result, err := s.Reload(e.ctx)
	if err != nil {
		return fmt.Errorf("loading logs: %w", err)
	}

	store.Put(state.KeyLogDir, dir.Name())
	store.Put(state.KeyLogFullPath, dir.Path())
	if err := store.Save(); err != nil {
		return err
	}

	e.log.WithField("directory", dir.Path()).Info("directory remembered")

	fmt.Fprintf(e.out, "Opened %s (%d files, %d records)\n", dir.Path(), len(result.Files), len(result.Records))
	fmt.Fprintln(e.out, output.SummaryLine(summary.Compute(result.Records)))
	return nil
}
